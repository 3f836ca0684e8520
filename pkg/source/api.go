/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/ipcollide/pkg/defaults"
	"github.com/NVIDIA/ipcollide/pkg/k8s/client"
)

// APISource lists pods across all namespaces through the Kubernetes API.
type APISource struct {
	// ClientSet is used when set; otherwise a client is built from Options.
	ClientSet kubernetes.Interface

	Options Options
}

// NewAPISource returns an APISource that builds its client lazily.
func NewAPISource(opts Options) *APISource {
	return &APISource{Options: opts}
}

// Pods implements PodSource. Client construction and list failures are
// returned wrapped in ErrDataSourceUnavailable.
func (a *APISource) Pods(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}

	if err := a.getClient(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}

	var pods []corev1.Pod
	opts := metav1.ListOptions{Limit: defaults.PodListPageSize}
	for {
		list, err := a.ClientSet.CoreV1().Pods(metav1.NamespaceAll).List(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list pods: %w", ErrDataSourceUnavailable, err)
		}
		pods = append(pods, list.Items...)
		if list.Continue == "" {
			break
		}
		opts.Continue = list.Continue
	}

	records := recordsFromPods(pods)
	slog.Debug("collected pod addresses", slog.Int("pods", len(pods)), slog.Int("records", len(records)))
	return records, nil
}

func (a *APISource) getClient() error {
	if a.ClientSet != nil {
		return nil
	}
	var err error
	a.ClientSet, err = client.BuildKubeClient(a.Options.Kubeconfig, a.Options.Context)
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return nil
}
