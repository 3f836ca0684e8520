/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/exec"
)

// DefaultKubectl is the kubectl binary looked up on PATH.
const DefaultKubectl = "kubectl"

// KubectlSource lists pods by running
// "kubectl get pods --all-namespaces -o json".
type KubectlSource struct {
	// Exec runs the command. Defaults to the host executor.
	Exec exec.Interface

	// Binary is the kubectl executable. Defaults to DefaultKubectl.
	Binary string

	Options Options
}

// NewKubectlSource returns a KubectlSource using the host executor.
func NewKubectlSource(opts Options) *KubectlSource {
	return &KubectlSource{
		Exec:    exec.New(),
		Binary:  DefaultKubectl,
		Options: opts,
	}
}

// Args returns the kubectl arguments used to list pods.
func (k *KubectlSource) Args() []string {
	args := []string{"get", "pods", "--all-namespaces", "-o", "json"}
	if k.Options.Kubeconfig != "" {
		args = append(args, "--kubeconfig", k.Options.Kubeconfig)
	}
	if k.Options.Context != "" {
		args = append(args, "--context", k.Options.Context)
	}
	return args
}

// Pods implements PodSource. Any command failure, including a non-zero exit,
// is returned wrapped in ErrDataSourceUnavailable.
func (k *KubectlSource) Pods(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}

	executor := k.Exec
	if executor == nil {
		executor = exec.New()
	}
	binary := k.Binary
	if binary == "" {
		binary = DefaultKubectl
	}

	args := k.Args()
	slog.Debug("listing pods with kubectl", slog.String("command", binary+" "+strings.Join(args, " ")))

	var stderr bytes.Buffer
	cmd := executor.CommandContext(ctx, binary, args...)
	cmd.SetStderr(&stderr)

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}

	var list corev1.PodList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode kubectl output: %w", ErrDataSourceUnavailable, err)
	}

	records := recordsFromPods(list.Items)
	slog.Debug("collected pod addresses", slog.Int("pods", len(list.Items)), slog.Int("records", len(records)))
	return records, nil
}
