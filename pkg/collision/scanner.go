/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package collision

import (
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/NVIDIA/ipcollide/pkg/network"
	"github.com/NVIDIA/ipcollide/pkg/source"
)

// Option is a functional option for configuring a Scanner.
type Option func(*Scanner)

// WithWidthPolicy sets the prefix widths applied to pod addresses.
func WithWidthPolicy(policy network.WidthPolicy) Option {
	return func(s *Scanner) {
		s.policy = policy
	}
}

// WithDetectorKind selects the Detector implementation used per scope.
func WithDetectorKind(kind network.DetectorKind) Option {
	return func(s *Scanner) {
		s.detector = kind
	}
}

// Scanner runs collision scans. It holds configuration only; every scan
// builds its own scopes, so a Scanner may be reused and shared.
type Scanner struct {
	policy   network.WidthPolicy
	detector network.DetectorKind
}

// NewScanner returns a Scanner with the /24 (IPv4), /64 (IPv6) pod width
// policy and the linear detector, modified by opts.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		policy:   network.DefaultWidthPolicy(),
		detector: network.DetectorLinear,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WidthPolicy returns the pod address width policy.
func (s *Scanner) WidthPolicy() network.WidthPolicy {
	return s.policy
}

// DetectorKind returns the configured detector implementation.
func (s *Scanner) DetectorKind() network.DetectorKind {
	return s.detector
}

// scope is one detection boundary: its seen networks and its collisions.
type scope struct {
	detector   network.Detector
	collisions *collisionSet
}

func (s *Scanner) newScope() *scope {
	return &scope{
		detector:   network.NewDetector(s.detector),
		collisions: newCollisionSet(),
	}
}

// observe inserts p and records it as a collision when it overlapped.
func (sc *scope) observe(p netip.Prefix) {
	if sc.detector.Observe(p) {
		sc.collisions.add(p.String())
	}
}

// ScanGlobal checks all records against each other in a single scope.
func (s *Scanner) ScanGlobal(records []source.Record) *Report {
	defer observeScan(ModeGlobal, time.Now())

	sc := s.newScope()
	report := &Report{}
	for _, rec := range records {
		p, err := network.NormalizeAddress(rec.Address, s.policy)
		if err != nil {
			slog.Warn("skipping pod with invalid address",
				"namespace", rec.Namespace, "pod", rec.Name, "error", err)
			report.Invalid = append(report.Invalid, rec.Address)
			continue
		}
		report.Scanned++
		sc.observe(p)
	}
	report.Collisions = sc.collisions.list()

	recordResult(ModeGlobal, len(report.Collisions), len(report.Invalid))
	slog.Debug("global scan complete",
		slog.Int("records", len(records)),
		slog.Int("collisions", len(report.Collisions)))
	return report
}

// ScanNamespaces checks records only against records of the same
// namespace. Each namespace gets its own scope, created on first sight.
func (s *Scanner) ScanNamespaces(records []source.Record) *NamespaceReport {
	defer observeScan(ModeNamespace, time.Now())

	scopes := make(map[string]*scope)
	var order []string
	report := &NamespaceReport{Namespaces: []NamespaceCollisions{}}

	for _, rec := range records {
		p, err := network.NormalizeAddress(rec.Address, s.policy)
		if err != nil {
			slog.Warn("skipping pod with invalid address",
				"namespace", rec.Namespace, "pod", rec.Name, "error", err)
			report.Invalid = append(report.Invalid, rec.Address)
			continue
		}

		sc, ok := scopes[rec.Namespace]
		if !ok {
			sc = s.newScope()
			scopes[rec.Namespace] = sc
			order = append(order, rec.Namespace)
		}
		report.Scanned++
		sc.observe(p)
	}

	for _, ns := range order {
		collisions := scopes[ns].collisions.list()
		if len(collisions) == 0 {
			continue
		}
		report.Namespaces = append(report.Namespaces, NamespaceCollisions{
			Namespace:  ns,
			Collisions: collisions,
		})
	}

	recordResult(ModeNamespace, report.TotalCollisions(), len(report.Invalid))
	slog.Debug("namespace scan complete",
		slog.Int("records", len(records)),
		slog.Int("namespaces", len(order)),
		slog.Int("collisions", report.TotalCollisions()))
	return report
}

// ScanFile checks raw address or subnet tokens in a single scope, using
// each token's own prefix length. Blank tokens are ignored; unparsable
// tokens are listed in Report.Invalid.
func (s *Scanner) ScanFile(tokens []string) *Report {
	defer observeScan(ModeFile, time.Now())

	sc := s.newScope()
	report := &Report{}
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		p, err := network.NormalizePrefix(tok)
		if err != nil {
			slog.Debug("skipping invalid entry", "entry", tok, "error", err)
			report.Invalid = append(report.Invalid, tok)
			continue
		}
		report.Scanned++
		sc.observe(p)
	}
	report.Collisions = sc.collisions.list()

	recordResult(ModeFile, len(report.Collisions), len(report.Invalid))
	slog.Debug("file scan complete",
		slog.Int("entries", len(tokens)),
		slog.Int("collisions", len(report.Collisions)))
	return report
}

func observeScan(mode Mode, start time.Time) {
	scanDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	scanTotal.WithLabelValues(mode.String()).Inc()
}

func recordResult(mode Mode, collisions, invalid int) {
	scanCollisions.WithLabelValues(mode.String()).Set(float64(collisions))
	invalidEntriesTotal.WithLabelValues(mode.String()).Add(float64(invalid))
}
