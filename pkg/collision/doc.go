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

// Package collision scans sequences of addresses for overlapping networks.
//
// # Scopes
//
// A scope is a detection boundary. Each normalized network is compared
// against the networks already seen in its scope; if it overlaps any of them
// the network is recorded as a collision. The first member of an overlapping
// pair is never reported, only the later one.
//
//   - ScanGlobal: one scope for all pod records
//   - ScanNamespaces: one scope per namespace, created on first sight
//   - ScanFile: one scope for the entries of a file
//
// Collisions are reported without duplicates, in order of first discovery.
// Namespaces are reported in order of first appearance.
//
// # Invalid Entries
//
// Entries that fail normalization are skipped and listed in the report's
// Invalid field. They never stop a scan.
//
// # Usage
//
//	s := collision.NewScanner(
//	    collision.WithWidthPolicy(network.WidthPolicy{IPv4Width: 24, IPv6Width: 64}),
//	    collision.WithDetectorKind(network.DetectorTrie),
//	)
//	report := s.ScanGlobal(records)
//	doc := collision.NewDocument(collision.ModeGlobal, report)
//	err := doc.RenderText(os.Stdout)
//
// # Metrics
//
// Each scan updates package-level Prometheus collectors labeled by mode:
// scan duration, scan count, collisions found by the last scan, and
// invalid entries seen.
package collision
