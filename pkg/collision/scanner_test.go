/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package collision

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/ipcollide/pkg/network"
	"github.com/NVIDIA/ipcollide/pkg/source"
)

var detectorKinds = []network.DetectorKind{network.DetectorLinear, network.DetectorTrie}

func TestScanGlobal(t *testing.T) {
	tests := []struct {
		name        string
		records     []source.Record
		want        []string
		wantInvalid []string
	}{
		{
			name: "distinct networks",
			records: []source.Record{
				{Namespace: "ns1", Name: "p1", Address: "192.168.1.10"},
				{Namespace: "ns2", Name: "p2", Address: "10.0.0.5"},
			},
			want: []string{},
		},
		{
			name: "same /24",
			records: []source.Record{
				{Namespace: "ns1", Name: "p1", Address: "192.168.1.10"},
				{Namespace: "ns1", Name: "p2", Address: "192.168.1.20"},
			},
			want: []string{"192.168.1.0/24"},
		},
		{
			name: "crosses namespaces",
			records: []source.Record{
				{Namespace: "ns1", Name: "p1", Address: "192.168.1.10"},
				{Namespace: "ns2", Name: "p2", Address: "192.168.1.20"},
			},
			want: []string{"192.168.1.0/24"},
		},
		{
			name: "duplicates suppressed in discovery order",
			records: []source.Record{
				{Namespace: "a", Name: "p1", Address: "10.0.2.1"},
				{Namespace: "a", Name: "p2", Address: "10.0.1.1"},
				{Namespace: "a", Name: "p3", Address: "10.0.1.2"},
				{Namespace: "a", Name: "p4", Address: "10.0.2.2"},
				{Namespace: "a", Name: "p5", Address: "10.0.1.3"},
			},
			want: []string{"10.0.1.0/24", "10.0.2.0/24"},
		},
		{
			name: "invalid address skipped",
			records: []source.Record{
				{Namespace: "ns1", Name: "p1", Address: "192.168.1.10"},
				{Namespace: "ns1", Name: "bad", Address: "192.168.1.999"},
				{Namespace: "ns1", Name: "p2", Address: "192.168.1.20"},
			},
			want:        []string{"192.168.1.0/24"},
			wantInvalid: []string{"192.168.1.999"},
		},
		{
			name:    "no records",
			records: nil,
			want:    []string{},
		},
	}

	for _, kind := range detectorKinds {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%s", kind, tt.name), func(t *testing.T) {
				s := NewScanner(WithDetectorKind(kind))
				report := s.ScanGlobal(tt.records)

				require.NotNil(t, report)
				assert.Equal(t, tt.want, report.Collisions)
				assert.Equal(t, tt.wantInvalid, report.Invalid)
				assert.Equal(t, len(tt.want) > 0, report.HasCollisions())
				assert.Equal(t, len(tt.records)-len(tt.wantInvalid), report.Scanned)
			})
		}
	}
}

func TestScanNamespaces(t *testing.T) {
	records := []source.Record{
		{Namespace: "default", Name: "pod1", Address: "192.168.1.10"},
		{Namespace: "kube-system", Name: "pod2", Address: "192.168.1.11"},
		{Namespace: "team-b", Name: "pod3", Address: "10.0.0.5"},
		{Namespace: "team-b", Name: "pod4", Address: "10.0.0.6"},
		{Namespace: "default", Name: "pod5", Address: "192.168.1.12"},
		{Namespace: "team-a", Name: "pod6", Address: "172.16.0.1"},
		{Namespace: "team-a", Name: "pod7", Address: "172.16.1.1"},
	}

	for _, kind := range detectorKinds {
		t.Run(kind.String(), func(t *testing.T) {
			report := NewScanner(WithDetectorKind(kind)).ScanNamespaces(records)

			require.NotNil(t, report)
			assert.Equal(t, []NamespaceCollisions{
				{Namespace: "default", Collisions: []string{"192.168.1.0/24"}},
				{Namespace: "team-b", Collisions: []string{"10.0.0.0/24"}},
			}, report.Namespaces)
			assert.Nil(t, report.Collisions("kube-system"))
			assert.Nil(t, report.Collisions("team-a"))
			assert.Equal(t, 2, report.TotalCollisions())
			assert.Equal(t, 7, report.Scanned)
		})
	}
}

func TestScanNamespaces_NoCollision(t *testing.T) {
	records := []source.Record{
		{Namespace: "default", Name: "pod1", Address: "192.168.1.10"},
		{Namespace: "kube-system", Name: "pod2", Address: "10.0.0.5"},
	}

	report := NewScanner().ScanNamespaces(records)
	assert.False(t, report.HasCollisions())
	assert.Empty(t, report.Namespaces)
}

func TestScanNamespaces_ScopesAreIndependent(t *testing.T) {
	records := []source.Record{
		{Namespace: "a", Name: "p1", Address: "192.168.1.10"},
		{Namespace: "b", Name: "p2", Address: "192.168.1.20"},
	}

	global := NewScanner().ScanGlobal(records)
	perNS := NewScanner().ScanNamespaces(records)

	assert.True(t, global.HasCollisions())
	assert.False(t, perNS.HasCollisions())
}

func TestScanNamespaces_OrderWithManyNamespaces(t *testing.T) {
	var records []source.Record
	var want []string
	for i := 0; i < 64; i++ {
		ns := fmt.Sprintf("ns-%02d", i)
		records = append(records,
			source.Record{Namespace: ns, Name: "a", Address: fmt.Sprintf("10.%d.0.1", i)},
			source.Record{Namespace: "quiet", Name: ns, Address: fmt.Sprintf("172.16.%d.1", i)},
		)
		if i%2 == 0 {
			records = append(records, source.Record{Namespace: ns, Name: "b", Address: fmt.Sprintf("10.%d.0.2", i)})
			want = append(want, ns)
		}
	}

	for _, kind := range detectorKinds {
		t.Run(kind.String(), func(t *testing.T) {
			report := NewScanner(WithDetectorKind(kind)).ScanNamespaces(records)

			got := make([]string, 0, len(report.Namespaces))
			for _, n := range report.Namespaces {
				got = append(got, n.Namespace)
				assert.Len(t, n.Collisions, 1)
			}
			assert.Equal(t, want, got)
			assert.Nil(t, report.Collisions("quiet"))
		})
	}
}

func TestScanGlobalMatchesNamespaceForSingleNamespace(t *testing.T) {
	records := []source.Record{
		{Namespace: "only", Name: "p1", Address: "192.168.1.10"},
		{Namespace: "only", Name: "p2", Address: "192.168.1.20"},
		{Namespace: "only", Name: "p3", Address: "10.1.0.1"},
		{Namespace: "only", Name: "p4", Address: "10.2.0.1"},
		{Namespace: "only", Name: "p5", Address: "10.1.0.99"},
		{Namespace: "only", Name: "p6", Address: "fd00::1"},
		{Namespace: "only", Name: "p7", Address: "fd00::2"},
	}

	for _, kind := range detectorKinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := NewScanner(WithDetectorKind(kind))
			global := s.ScanGlobal(records)
			perNS := s.ScanNamespaces(records)

			require.Len(t, perNS.Namespaces, 1)
			assert.Equal(t, global.Collisions, perNS.Collisions("only"))
			assert.Equal(t, []string{"192.168.1.0/24", "10.1.0.0/24", "fd00::/64"}, global.Collisions)
		})
	}
}

func TestScanGlobal_WidthPolicy(t *testing.T) {
	records := []source.Record{
		{Namespace: "ns", Name: "p1", Address: "10.0.1.10"},
		{Namespace: "ns", Name: "p2", Address: "10.0.2.10"},
	}

	assert.False(t, NewScanner().ScanGlobal(records).HasCollisions())

	wide := NewScanner(WithWidthPolicy(network.WidthPolicy{IPv4Width: 16, IPv6Width: 64}))
	assert.Equal(t, []string{"10.0.0.0/16"}, wide.ScanGlobal(records).Collisions)
}

func TestScanFile(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []string
		want        []string
		wantInvalid []string
	}{
		{
			name:   "overlapping subnets",
			tokens: []string{"192.168.1.0/24", "192.168.1.50/24"},
			want:   []string{"192.168.1.0/24"},
		},
		{
			name:   "no overlap",
			tokens: []string{"192.168.1.0/24", "10.0.0.0/8"},
			want:   []string{},
		},
		{
			name:        "invalid entry",
			tokens:      []string{"not-an-ip"},
			want:        []string{},
			wantInvalid: []string{"not-an-ip"},
		},
		{
			name:        "invalid entry among valid",
			tokens:      []string{"10.0.0.0/8", "not-an-ip", "10.1.0.0/16"},
			want:        []string{"10.1.0.0/16"},
			wantInvalid: []string{"not-an-ip"},
		},
		{
			name:   "host inside subnet",
			tokens: []string{"10.0.0.0/8", "10.2.3.4"},
			want:   []string{"10.2.3.4/32"},
		},
		{
			name:   "different prefix lengths, later wider",
			tokens: []string{"10.2.3.0/24", "10.0.0.0/8"},
			want:   []string{"10.0.0.0/8"},
		},
		{
			name:   "adjacent subnets",
			tokens: []string{"192.168.0.0/24", "192.168.1.0/24"},
			want:   []string{},
		},
		{
			name:   "ipv6",
			tokens: []string{"2001:db8::/32", "2001:db8:1::/48", "2001:db9::/32"},
			want:   []string{"2001:db8:1::/48"},
		},
		{
			name:   "blank tokens ignored",
			tokens: []string{"", "10.0.0.0/8", "  "},
			want:   []string{},
		},
	}

	for _, kind := range detectorKinds {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%s", kind, tt.name), func(t *testing.T) {
				report := NewScanner(WithDetectorKind(kind)).ScanFile(tt.tokens)
				assert.Equal(t, tt.want, report.Collisions)
				assert.Equal(t, tt.wantInvalid, report.Invalid)
			})
		}
	}
}

func TestScanFile_PairOrderIndependent(t *testing.T) {
	pairs := [][2]string{
		{"10.0.0.0/8", "10.1.0.0/16"},
		{"192.168.1.0/24", "192.168.1.128/25"},
		{"2001:db8::/32", "2001:db8::1"},
	}

	s := NewScanner()
	for _, pair := range pairs {
		forward := s.ScanFile([]string{pair[0], pair[1]})
		backward := s.ScanFile([]string{pair[1], pair[0]})
		assert.True(t, forward.HasCollisions(), "%v", pair)
		assert.True(t, backward.HasCollisions(), "%v", pair)
	}
}

func TestNewScanner_Defaults(t *testing.T) {
	s := NewScanner()
	assert.Equal(t, network.DefaultWidthPolicy(), s.WidthPolicy())
	assert.Equal(t, network.DetectorLinear, s.DetectorKind())

	s = NewScanner(WithDetectorKind(network.DetectorTrie))
	assert.Equal(t, network.DetectorTrie, s.DetectorKind())
}

func TestScan_Metrics(t *testing.T) {
	before := testutil.ToFloat64(scanTotal.WithLabelValues(ModeFile.String()))
	invalidBefore := testutil.ToFloat64(invalidEntriesTotal.WithLabelValues(ModeFile.String()))

	NewScanner().ScanFile([]string{"10.0.0.0/8", "10.0.0.0/16", "bogus"})

	assert.Equal(t, before+1, testutil.ToFloat64(scanTotal.WithLabelValues(ModeFile.String())))
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(invalidEntriesTotal.WithLabelValues(ModeFile.String())))
	assert.Equal(t, float64(1), testutil.ToFloat64(scanCollisions.WithLabelValues(ModeFile.String())))
}

func TestMode(t *testing.T) {
	assert.True(t, ModeGlobal.IsClusterMode())
	assert.True(t, ModeNamespace.IsClusterMode())
	assert.False(t, ModeFile.IsClusterMode())
	assert.Equal(t, []string{"global", "namespace"}, SupportedClusterModes())
}
