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

// Package cli implements the command-line interface for the ipcollide tool.
//
// # Overview
//
// ipcollide reports pod networks that overlap a network seen earlier. Each
// pod IP is widened to its pod network (/24 for IPv4, /64 for IPv6 by
// default) before comparison, so two pods sharing a /24 are reported as a
// collision.
//
// # Modes
//
// Global (default), one scope for the whole cluster:
//
//	ipcollide
//	ipcollide --mode global
//
// Namespace, one independent scope per namespace:
//
//	ipcollide --mode namespace
//
// File, one scope over the addresses and subnets listed in a file. Takes
// precedence over --mode and never contacts the cluster:
//
//	ipcollide --check-collision subnets.txt
//
// # Pod Data Sources
//
//	--source kubectl   run kubectl get pods --all-namespaces -o json (default)
//	--source api       list pods through the API server with client-go
//	--kubeconfig PATH  kubeconfig to use
//	--context NAME     kubeconfig context to use
//	--timeout DURATION maximum time for the pod listing (default: 30s)
//
// # Flags
//
//	--ipv4-width N     prefix length for IPv4 pod addresses (default: 24)
//	--ipv6-width N     prefix length for IPv6 pod addresses (default: 64)
//	--detector NAME    linear or trie (default: linear)
//	--output, -o       Output file path (default: stdout)
//	--format, -f       Output format: text, json, yaml (default: text)
//	--metrics-file F   Write scan metrics in Prometheus text format
//	--fail-on-error    Non-zero exit codes for automation (see below)
//	--debug            Enable debug logging
//	--log-json         Output logs in JSON format
//	--version, -v      Show version information
//
// # Environment Variables
//
//	IPCOLLIDE_MODE     Default for --mode
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG         Path to kubeconfig file
//
// # Exit Codes
//
//	0  Success, including recovered data source failures
//	1  General error (invalid arguments, output cannot be written)
//	3  Cluster unreachable or no pods (with --fail-on-error)
//	4  Collision file not found (with --fail-on-error)
//	5  Collisions found (with --fail-on-error)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/ipcollide/pkg/cli.version=1.0.0'"
package cli
