/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ipcollide/pkg/collision"
	"github.com/NVIDIA/ipcollide/pkg/serializer"
	"github.com/NVIDIA/ipcollide/pkg/source"
)

// Console lines for recovered data source failures.
const (
	MsgFileNotFound    = "File not found: %s"
	MsgCommandFailed   = "Error running kubectl command: %v"
	MsgNoPodsGuidance  = "No pod IPs found. Ensure Kubernetes cluster is running and accessible."
	msgCollisionsFound = "collisions found"
)

// newPodSource is swapped out in tests.
var newPodSource = source.NewPodSource

func runScan(ctx context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	scanner, err := buildScanner(cmd)
	if err != nil {
		return err
	}

	if path := cmd.String("check-collision"); path != "" {
		return runFileScan(ctx, cmd, scanner, outFormat, path)
	}
	return runClusterScan(ctx, cmd, scanner, outFormat)
}

func runFileScan(ctx context.Context, cmd *cli.Command, scanner *collision.Scanner, outFormat serializer.Format, path string) error {
	tokens, err := source.ReadTokens(path)
	if err != nil {
		if errors.Is(err, source.ErrFileNotFound) {
			slog.Debug("collision file missing", "path", path)
			console(cmd, MsgFileNotFound, path)
			return exitIf(cmd, "file not found", ExitFileNotFound)
		}
		return err
	}

	slog.Debug("scanning file", "path", path, "entries", len(tokens))
	doc := collision.NewDocument(collision.ModeFile, scanner.ScanFile(tokens))
	return writeDocument(ctx, cmd, outFormat, doc)
}

func runClusterScan(ctx context.Context, cmd *cli.Command, scanner *collision.Scanner, outFormat serializer.Format) error {
	mode, err := parseMode(cmd)
	if err != nil {
		return err
	}

	kind, err := parseSourceKind(cmd)
	if err != nil {
		return err
	}

	src, err := newPodSource(kind, source.Options{
		Kubeconfig: cmd.String("kubeconfig"),
		Context:    cmd.String("context"),
	})
	if err != nil {
		return err
	}

	listCtx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	records, err := src.Pods(listCtx)
	if err != nil {
		if !errors.Is(err, source.ErrDataSourceUnavailable) {
			return err
		}
		slog.Debug("pod source failed", "source", kind, "error", err)
		console(cmd, MsgCommandFailed, err)
		records = nil
	}

	if len(records) == 0 {
		console(cmd, MsgNoPodsGuidance)
		return exitIf(cmd, "no pod IPs found", ExitDataSourceUnavailable)
	}

	slog.Debug("scanning pods", "mode", mode, "pods", len(records), "detector", scanner.DetectorKind())

	var doc *collision.Document
	if mode == collision.ModeNamespace {
		doc = collision.NewNamespaceDocument(scanner.ScanNamespaces(records))
	} else {
		doc = collision.NewDocument(mode, scanner.ScanGlobal(records))
	}
	return writeDocument(ctx, cmd, outFormat, doc)
}

// writeDocument serializes doc to --output, or to the command writer when
// no output file was given.
func writeDocument(ctx context.Context, cmd *cli.Command, outFormat serializer.Format, doc *collision.Document) error {
	ser, err := newSerializer(cmd, outFormat)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, doc); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if path := cmd.String("metrics-file"); path != "" {
		if err := collision.WriteMetrics(path); err != nil {
			return err
		}
	}

	if doc.HasCollisions() {
		return exitIf(cmd, msgCollisionsFound, ExitCollisionsFound)
	}
	return nil
}

func newSerializer(cmd *cli.Command, outFormat serializer.Format) (serializer.Serializer, error) {
	path := strings.TrimSpace(cmd.String("output"))
	if path == "" || path == serializer.StdoutURI {
		return serializer.NewWriter(outFormat, consoleWriter(cmd)), nil
	}
	return serializer.NewFileWriterOrStdout(outFormat, path)
}

// exitIf returns an exit error carrying code when --fail-on-error is set.
func exitIf(cmd *cli.Command, msg string, code int) error {
	if !cmd.Bool("fail-on-error") {
		return nil
	}
	return cli.Exit(msg, code)
}

func console(cmd *cli.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(consoleWriter(cmd), format+"\n", args...); err != nil {
		slog.Warn("failed to write to console", "error", err)
	}
}

func consoleWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
