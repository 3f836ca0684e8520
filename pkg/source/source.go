/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"context"
	"errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

var (
	// ErrDataSourceUnavailable is returned when the cluster cannot be queried.
	ErrDataSourceUnavailable = errors.New("data source unavailable")

	// ErrFileNotFound is returned when an input file does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// Record is a single pod address observation.
type Record struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Name      string `json:"pod" yaml:"pod"`
	Address   string `json:"ip" yaml:"ip"`
}

// PodSource yields the pod address records of a cluster.
type PodSource interface {
	Pods(ctx context.Context) ([]Record, error)
}

// Kind selects a PodSource implementation.
type Kind string

const (
	// KindKubectl shells out to kubectl.
	KindKubectl Kind = "kubectl"

	// KindAPI talks to the API server with client-go.
	KindAPI Kind = "api"
)

// String returns the string representation of the source kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k names a known source.
func (k Kind) IsValid() bool {
	return k == KindKubectl || k == KindAPI
}

// SupportedKinds returns the accepted source names.
func SupportedKinds() []string {
	return []string{KindKubectl.String(), KindAPI.String()}
}

// Options configures how a PodSource reaches the cluster.
type Options struct {
	// Kubeconfig is the kubeconfig path. Empty means default discovery.
	Kubeconfig string

	// Context is the kubeconfig context. Empty means current context.
	Context string
}

// NewPodSource returns the PodSource for kind.
func NewPodSource(kind Kind, opts Options) (PodSource, error) {
	switch kind {
	case KindKubectl, "":
		return NewKubectlSource(opts), nil
	case KindAPI:
		return NewAPISource(opts), nil
	default:
		return nil, fmt.Errorf("unknown source %q, supported values: %v", kind, SupportedKinds())
	}
}

// recordsFromPods maps pods to records, skipping pods that have no IP yet.
func recordsFromPods(pods []corev1.Pod) []Record {
	records := make([]Record, 0, len(pods))
	for _, pod := range pods {
		if pod.Status.PodIP == "" {
			continue
		}
		records = append(records, Record{
			Namespace: pod.Namespace,
			Name:      pod.Name,
			Address:   pod.Status.PodIP,
		})
	}
	return records
}
