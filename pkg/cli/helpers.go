/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ipcollide/pkg/collision"
	"github.com/NVIDIA/ipcollide/pkg/network"
	"github.com/NVIDIA/ipcollide/pkg/serializer"
	"github.com/NVIDIA/ipcollide/pkg/source"
)

// maxSuggestDistance is the largest edit distance still offered as a hint.
const maxSuggestDistance = 3

// suggest returns the supported value closest to got, or "" when none is close.
func suggest(got string, supported []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, s := range supported {
		if d := levenshtein.ComputeDistance(strings.ToLower(got), s); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// invalidValue builds the error for an unsupported enum flag value.
func invalidValue(flag, got string, supported []string) error {
	if hint := suggest(got, supported); hint != "" {
		return fmt.Errorf("invalid %s: %q, did you mean %q? supported values: %v", flag, got, hint, supported)
	}
	return fmt.Errorf("invalid %s: %q, supported values: %v", flag, got, supported)
}

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", invalidValue("format", string(outFormat), serializer.SupportedFormats())
	}
	return outFormat, nil
}

// parseMode extracts and validates the cluster scan mode.
func parseMode(cmd *cli.Command) (collision.Mode, error) {
	mode := collision.Mode(cmd.String("mode"))
	if !mode.IsClusterMode() {
		return "", invalidValue("mode", string(mode), collision.SupportedClusterModes())
	}
	return mode, nil
}

// parseSourceKind extracts and validates the pod data source.
func parseSourceKind(cmd *cli.Command) (source.Kind, error) {
	kind := source.Kind(cmd.String("source"))
	if !kind.IsValid() {
		return "", invalidValue("source", string(kind), source.SupportedKinds())
	}
	return kind, nil
}

// buildScanner assembles a collision.Scanner from the width and detector flags.
func buildScanner(cmd *cli.Command) (*collision.Scanner, error) {
	kind := network.DetectorKind(cmd.String("detector"))
	if !kind.IsValid() {
		return nil, invalidValue("detector", string(kind), network.SupportedDetectorKinds())
	}

	policy := network.WidthPolicy{
		IPv4Width: cmd.Int("ipv4-width"),
		IPv6Width: cmd.Int("ipv6-width"),
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pod width: %w", err)
	}

	return collision.NewScanner(
		collision.WithWidthPolicy(policy),
		collision.WithDetectorKind(kind),
	), nil
}
