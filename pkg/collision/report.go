/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package collision

// Mode identifies which scan produced a report.
type Mode string

const (
	// ModeGlobal scans all pod addresses in a single scope.
	ModeGlobal Mode = "global"

	// ModeNamespace scans pod addresses in one scope per namespace.
	ModeNamespace Mode = "namespace"

	// ModeFile scans the entries of a user supplied file.
	ModeFile Mode = "file"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// IsClusterMode reports whether m is selectable for cluster-sourced data.
func (m Mode) IsClusterMode() bool {
	return m == ModeGlobal || m == ModeNamespace
}

// SupportedClusterModes returns the modes accepted by --mode.
func SupportedClusterModes() []string {
	return []string{ModeGlobal.String(), ModeNamespace.String()}
}

// Report is the result of a single-scope scan.
type Report struct {
	// Collisions lists networks that overlapped an earlier network, without
	// duplicates, in order of first discovery.
	Collisions []string `json:"collisions" yaml:"collisions"`

	// Invalid lists entries that could not be parsed, in input order.
	Invalid []string `json:"invalid,omitempty" yaml:"invalid,omitempty"`

	// Scanned is the number of entries that entered detection.
	Scanned int `json:"scanned" yaml:"scanned"`
}

// HasCollisions reports whether any collision was found.
func (r *Report) HasCollisions() bool {
	return r != nil && len(r.Collisions) > 0
}

// NamespaceCollisions holds the collisions of one namespace scope.
type NamespaceCollisions struct {
	Namespace  string   `json:"namespace" yaml:"namespace"`
	Collisions []string `json:"collisions" yaml:"collisions"`
}

// NamespaceReport is the result of a per-namespace scan. Only namespaces
// with at least one collision appear, in order of first appearance.
type NamespaceReport struct {
	Namespaces []NamespaceCollisions `json:"namespaces" yaml:"namespaces"`
	Invalid    []string              `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	Scanned    int                   `json:"scanned" yaml:"scanned"`
}

// HasCollisions reports whether any namespace has a collision.
func (r *NamespaceReport) HasCollisions() bool {
	return r != nil && len(r.Namespaces) > 0
}

// Collisions returns the collisions for ns, or nil.
func (r *NamespaceReport) Collisions(ns string) []string {
	if r == nil {
		return nil
	}
	for _, n := range r.Namespaces {
		if n.Namespace == ns {
			return n.Collisions
		}
	}
	return nil
}

// TotalCollisions returns the number of collisions across namespaces.
func (r *NamespaceReport) TotalCollisions() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, n := range r.Namespaces {
		total += len(n.Collisions)
	}
	return total
}

// collisionSet is an insertion-ordered set of network strings.
type collisionSet struct {
	seen  map[string]struct{}
	order []string
}

func newCollisionSet() *collisionSet {
	return &collisionSet{seen: make(map[string]struct{})}
}

func (s *collisionSet) add(network string) {
	if _, ok := s.seen[network]; ok {
		return
	}
	s.seen[network] = struct{}{}
	s.order = append(s.order, network)
}

func (s *collisionSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
