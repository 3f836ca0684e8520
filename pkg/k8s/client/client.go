package client

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// ResolveKubeconfig returns the kubeconfig path to use.
//
// Resolution order:
//  1. The explicit path, if non-empty
//  2. KUBECONFIG environment variable
//  3. ~/.kube/config (if it exists)
//  4. "" (in-cluster configuration)
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	path := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// BuildRestConfig creates the REST configuration for the given kubeconfig
// path and context. An empty context selects the kubeconfig's current one.
func BuildRestConfig(kubeconfig, kubeContext string) (*rest.Config, error) {
	kubeconfig = ResolveKubeconfig(kubeconfig)

	if kubeconfig == "" && kubeContext == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to build kube config: %w", err)
		}
		return config, nil
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = kubeconfig
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}
	return config, nil
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file
// and context.
//
// Example with custom kubeconfig:
//
//	clientset, err := client.BuildKubeClient("/path/to/custom/kubeconfig", "")
//	if err != nil {
//	    return fmt.Errorf("failed to build client: %w", err)
//	}
func BuildKubeClient(kubeconfig, kubeContext string) (kubernetes.Interface, error) {
	config, err := BuildRestConfig(kubeconfig, kubeContext)
	if err != nil {
		return nil, err
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, nil
}
