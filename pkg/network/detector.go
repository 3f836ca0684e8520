/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package network

import (
	"fmt"
	"log/slog"
	"net"
	"net/netip"

	"github.com/yl2chen/cidranger"
)

// DetectorKind selects the Detector implementation backing a scope.
type DetectorKind string

const (
	// DetectorLinear compares each candidate against every stored network.
	DetectorLinear DetectorKind = "linear"

	// DetectorTrie stores networks in a path-compressed prefix trie.
	DetectorTrie DetectorKind = "trie"
)

// String returns the string representation of the detector kind.
func (k DetectorKind) String() string {
	return string(k)
}

// IsValid reports whether k names a known detector.
func (k DetectorKind) IsValid() bool {
	switch k {
	case DetectorLinear, DetectorTrie:
		return true
	default:
		return false
	}
}

// SupportedDetectorKinds returns the names accepted by NewDetector.
func SupportedDetectorKinds() []string {
	return []string{DetectorLinear.String(), DetectorTrie.String()}
}

// Detector is the per-scope set of networks already seen.
type Detector interface {
	// Observe reports whether p overlaps any network observed earlier in
	// this scope. p is inserted whatever the outcome.
	Observe(p netip.Prefix) bool

	// Len returns the number of observations made.
	Len() int
}

// NewDetector returns an empty detector of the given kind. Unknown kinds
// get the linear implementation.
func NewDetector(kind DetectorKind) Detector {
	if kind == DetectorTrie {
		return NewTrieDetector()
	}
	return NewLinearDetector()
}

// Overlaps reports whether the address ranges of a and b intersect.
// Prefixes of different address families never overlap.
func Overlaps(a, b netip.Prefix) bool {
	return a.Masked().Overlaps(b.Masked())
}

// LinearDetector is a slice-backed Detector. Every observation is compared
// with all stored networks.
type LinearDetector struct {
	seen []netip.Prefix
}

// NewLinearDetector returns an empty LinearDetector.
func NewLinearDetector() *LinearDetector {
	return &LinearDetector{}
}

// Observe implements Detector.
func (d *LinearDetector) Observe(p netip.Prefix) bool {
	p = p.Masked()
	hit := false
	for _, n := range d.seen {
		if Overlaps(n, p) {
			hit = true
			break
		}
	}
	d.seen = append(d.seen, p)
	return hit
}

// Len implements Detector.
func (d *LinearDetector) Len() int {
	return len(d.seen)
}

// TrieDetector is a Detector backed by a cidranger prefix trie. Two aligned
// networks overlap only when one contains the other, so a candidate collides
// when a stored network contains its base address or lies inside it.
type TrieDetector struct {
	ranger cidranger.Ranger
	count  int

	// IPv4-mapped IPv6 prefixes are a separate family for netip but not
	// for the net package the trie is built on; they stay out of the trie.
	// Only IPv6 entries of /96 or wider can contain one, those are kept
	// in wide6 for the cross check.
	mapped *LinearDetector
	wide6  []netip.Prefix
}

// NewTrieDetector returns an empty TrieDetector.
func NewTrieDetector() *TrieDetector {
	return &TrieDetector{
		ranger: cidranger.NewPCTrieRanger(),
		mapped: NewLinearDetector(),
	}
}

// Observe implements Detector.
func (d *TrieDetector) Observe(p netip.Prefix) bool {
	d.count++
	p = p.Masked()
	if p.Addr().Is4In6() {
		hit := false
		for _, q := range d.wide6 {
			if Overlaps(q, p) {
				hit = true
				break
			}
		}
		return d.mapped.Observe(p) || hit
	}

	ipNet := toIPNet(p)
	hit, err := d.overlaps(ipNet)
	if err != nil {
		slog.Warn("trie lookup failed", "network", p.String(), "error", err)
	}
	if !hit && p.Addr().Is6() {
		for _, m := range d.mapped.seen {
			if Overlaps(p, m) {
				hit = true
				break
			}
		}
	}

	if err := d.ranger.Insert(cidranger.NewBasicRangerEntry(ipNet)); err != nil {
		slog.Warn("trie insert failed", "network", p.String(), "error", err)
	}
	if p.Addr().Is6() && p.Bits() <= 96 {
		d.wide6 = append(d.wide6, p)
	}
	return hit
}

// Len implements Detector.
func (d *TrieDetector) Len() int {
	return d.count
}

func (d *TrieDetector) overlaps(ipNet net.IPNet) (bool, error) {
	containing, err := d.ranger.ContainingNetworks(ipNet.IP)
	if err != nil {
		return false, fmt.Errorf("containing networks of %s: %w", ipNet.String(), err)
	}
	if len(containing) > 0 {
		return true, nil
	}

	covered, err := d.ranger.CoveredNetworks(ipNet)
	if err != nil {
		return false, fmt.Errorf("covered networks of %s: %w", ipNet.String(), err)
	}
	return len(covered) > 0, nil
}

// toIPNet converts a masked netip.Prefix to its net.IPNet form.
func toIPNet(p netip.Prefix) net.IPNet {
	addr := p.Addr()
	return net.IPNet{
		IP:   net.IP(addr.AsSlice()),
		Mask: net.CIDRMask(p.Bits(), addr.BitLen()),
	}
}
