// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package network normalizes address strings into canonical networks and
// detects overlap between them.
//
// # Normalization
//
// Pod addresses are bare IPs widened to a fixed prefix per address family:
//
//	p, err := network.NormalizeAddress("192.168.1.10", network.DefaultWidthPolicy())
//	// p == 192.168.1.0/24
//
// File entries carry their own prefix, or none (host network):
//
//	network.NormalizePrefix("192.168.1.50/24") // 192.168.1.0/24
//	network.NormalizePrefix("10.0.0.1")        // 10.0.0.1/32
//	network.NormalizePrefix("2001:db8::1")     // 2001:db8::1/128
//
// Host bits are always cleared. Invalid input returns an error wrapping
// ErrInvalidAddress.
//
// # Overlap Detection
//
// A Detector is the set of networks seen within one scope. Observe inserts
// a network and reports whether it overlapped anything inserted before it:
//
//	d := network.NewDetector(network.DetectorLinear)
//	d.Observe(netip.MustParsePrefix("192.168.1.0/24"))   // false
//	d.Observe(netip.MustParsePrefix("192.168.0.0/16"))   // true
//
// Two implementations are provided with identical results:
//   - linear: pairwise comparison, fine for a few thousand entries
//   - trie: github.com/yl2chen/cidranger path-compressed trie
package network
