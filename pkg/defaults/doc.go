// Package defaults provides centralized configuration constants for ipcollide.
//
// This package defines timeout values and paging parameters used across the
// codebase so tuning happens in one place.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/ipcollide/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SourceTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Pod sources: 30s for kubectl or a full paginated list
//   - Individual API list calls inherit the source deadline
package defaults
