/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ipcollide/pkg/collision"
	"github.com/NVIDIA/ipcollide/pkg/defaults"
	"github.com/NVIDIA/ipcollide/pkg/logging"
	"github.com/NVIDIA/ipcollide/pkg/network"
	"github.com/NVIDIA/ipcollide/pkg/serializer"
	"github.com/NVIDIA/ipcollide/pkg/source"
)

const name = "ipcollide"

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Process exit codes used when --fail-on-error is set.
const (
	ExitDataSourceUnavailable = 3
	ExitFileNotFound          = 4
	ExitCollisionsFound       = 5
)

// EnvMode overrides the default --mode value.
const EnvMode = "IPCOLLIDE_MODE"

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(serializer.FormatText),
		Usage:   fmt.Sprintf("output format %v", serializer.SupportedFormats()),
	}
}

// Execute runs the root command against os.Args and exits non-zero on error.
func Execute() {
	cmd := Command()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// Command returns the ipcollide root command.
func Command() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Detect overlapping pod networks in a Kubernetes cluster or an address list",
		Description: `Reads pod IPs from the current Kubernetes cluster, widens each to its
pod network (/24 for IPv4, /64 for IPv6 by default) and reports networks that
overlap a network seen earlier.

# Examples

Check all pods across the cluster:
  ipcollide

Check pods within each namespace independently:
  ipcollide --mode namespace

Check a file of addresses and subnets, one per line:
  ipcollide --check-collision subnets.txt

Emit a JSON report and fail the pipeline when collisions exist:
  ipcollide --format json --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   collision.ModeGlobal.String(),
				Usage:   fmt.Sprintf("collision scope for cluster scans %v", collision.SupportedClusterModes()),
				Sources: cli.EnvVars(EnvMode),
			},
			&cli.StringFlag{
				Name:      "check-collision",
				Usage:     "check collisions among the addresses and subnets listed in `FILE`",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "source",
				Value: source.KindKubectl.String(),
				Usage: fmt.Sprintf("pod data source %v", source.SupportedKinds()),
			},
			&cli.StringFlag{
				Name:      "kubeconfig",
				Usage:     "path to the kubeconfig file",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "context",
				Usage: "kubeconfig context to use",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.SourceTimeout,
				Usage: "maximum time to wait for the pod listing",
			},
			&cli.IntFlag{
				Name:  "ipv4-width",
				Value: network.DefaultIPv4Width,
				Usage: "prefix length assigned to IPv4 pod addresses",
			},
			&cli.IntFlag{
				Name:  "ipv6-width",
				Value: network.DefaultIPv6Width,
				Usage: "prefix length assigned to IPv6 pod addresses",
			},
			&cli.StringFlag{
				Name:  "detector",
				Value: network.DetectorLinear.String(),
				Usage: fmt.Sprintf("overlap detection strategy %v", network.SupportedDetectorKinds()),
			},
			outputFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:      "metrics-file",
				Usage:     "write scan metrics in Prometheus text format to `FILE`",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: fmt.Sprintf("exit %d when the cluster is unreachable, %d when the file is missing, %d when collisions are found", ExitDataSourceUnavailable, ExitFileNotFound, ExitCollisionsFound),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "emit logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := ""
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefault(logging.Options{
				Name:    name,
				Version: version,
				Level:   level,
				JSON:    cmd.Bool("log-json"),
				Output:  cmd.Root().ErrWriter,
			})
			return ctx, nil
		},
		Action: runScan,
	}
}
