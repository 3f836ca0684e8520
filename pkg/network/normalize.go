/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package network

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrInvalidAddress is returned when a string is not a valid address or
// address/prefix combination.
var ErrInvalidAddress = errors.New("invalid IP or subnet format")

const (
	// DefaultIPv4Width is the prefix length imposed on IPv4 pod addresses.
	DefaultIPv4Width = 24

	// DefaultIPv6Width is the prefix length imposed on IPv6 pod addresses.
	DefaultIPv6Width = 64
)

// WidthPolicy holds the prefix lengths used to widen bare pod addresses
// into networks, one per address family.
type WidthPolicy struct {
	IPv4Width int `json:"ipv4Width" yaml:"ipv4Width"`
	IPv6Width int `json:"ipv6Width" yaml:"ipv6Width"`
}

// DefaultWidthPolicy returns the /24 (IPv4) and /64 (IPv6) policy.
func DefaultWidthPolicy() WidthPolicy {
	return WidthPolicy{
		IPv4Width: DefaultIPv4Width,
		IPv6Width: DefaultIPv6Width,
	}
}

// Validate checks that both widths fit their address family.
func (w WidthPolicy) Validate() error {
	if w.IPv4Width < 0 || w.IPv4Width > 32 {
		return fmt.Errorf("ipv4 width %d out of range [0,32]", w.IPv4Width)
	}
	if w.IPv6Width < 0 || w.IPv6Width > 128 {
		return fmt.Errorf("ipv6 width %d out of range [0,128]", w.IPv6Width)
	}
	return nil
}

// widthFor returns the configured width for the family of addr.
func (w WidthPolicy) widthFor(addr netip.Addr) int {
	if addr.Is4() {
		return w.IPv4Width
	}
	return w.IPv6Width
}

// NormalizeAddress converts a bare address into the network that contains
// it at the policy width for its family. Host bits are cleared.
//
// Example:
//
//	p, _ := NormalizeAddress("192.168.1.10", DefaultWidthPolicy())
//	p.String() // "192.168.1.0/24"
func NormalizeAddress(raw string, policy WidthPolicy) (netip.Prefix, error) {
	s := strings.TrimSpace(raw)
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}

	p, err := addr.Prefix(policy.widthFor(addr))
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, raw, err)
	}
	return p, nil
}

// NormalizePrefix parses either "address" or "address/bits" and returns the
// canonical network. A bare address is a host network (/32 or /128). Host
// bits in the address part are permitted and masked off. IPv4 entries may
// also carry a dotted netmask ("10.0.0.0/255.0.0.0") or hostmask
// ("10.0.0.0/0.255.255.255").
func NormalizePrefix(raw string) (netip.Prefix, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}

	if addrPart, maskPart, ok := strings.Cut(s, "/"); ok {
		if strings.Contains(maskPart, ".") {
			return prefixFromNetmask(raw, addrPart, maskPart)
		}
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
		}
		return p.Masked(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// prefixFromNetmask handles the "a.b.c.d/m.m.m.m" form. The mask is read
// as a netmask first, then as a hostmask ("10.0.0.0/0.0.0.255" is a /24).
// Masks that are neither are rejected.
func prefixFromNetmask(raw, addrPart, maskPart string) (netip.Prefix, error) {
	addr, err := netip.ParseAddr(addrPart)
	if err != nil || !addr.Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}
	mask, err := netip.ParseAddr(maskPart)
	if err != nil || !mask.Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}

	m := mask.As4()
	if ones, bits := net.IPv4Mask(m[0], m[1], m[2], m[3]).Size(); bits != 0 {
		return netip.PrefixFrom(addr, ones).Masked(), nil
	}
	if ones, bits := net.IPv4Mask(^m[0], ^m[1], ^m[2], ^m[3]).Size(); bits != 0 {
		return netip.PrefixFrom(addr, ones).Masked(), nil
	}
	return netip.Prefix{}, fmt.Errorf("%w: %s: invalid netmask", ErrInvalidAddress, raw)
}
