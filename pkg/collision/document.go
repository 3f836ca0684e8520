/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package collision

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/NVIDIA/ipcollide/pkg/header"
)

// DocumentKind is the header kind of serialized scan results.
const DocumentKind = "CollisionReport"

// Console lines printed for each scan outcome.
const (
	MsgGlobalNone     = "No Global IP Collisions Detected"
	MsgGlobalFound    = "Global IP Collisions Found:"
	MsgNamespaceNone  = "No Namespace-Specific IP Collisions Detected"
	MsgNamespaceFound = "⚠️ Namespace-Specific IP Collisions Found:"
	MsgFileNone       = "No Collisions Found in File"
	MsgFileFound      = "Collisions Found in File:"
	MsgInvalidEntry   = "Invalid IP or subnet format: %s"
	MsgNamespace      = "Namespace: %s"
	MsgCollisionLine  = "  - %s"
)

// Document wraps a scan result for output. Exactly one of Result and
// Namespaces is set, depending on Mode.
type Document struct {
	header.Header `yaml:",inline"`

	Mode       Mode             `json:"mode" yaml:"mode"`
	Result     *Report          `json:"result,omitempty" yaml:"result,omitempty"`
	Namespaces *NamespaceReport `json:"namespaceResult,omitempty" yaml:"namespaceResult,omitempty"`
}

// NewDocument returns a Document for a single-scope report.
func NewDocument(mode Mode, r *Report) *Document {
	return &Document{
		Header: newHeader(mode),
		Mode:   mode,
		Result: r,
	}
}

// NewNamespaceDocument returns a Document for a per-namespace report.
func NewNamespaceDocument(r *NamespaceReport) *Document {
	return &Document{
		Header:     newHeader(ModeNamespace),
		Mode:       ModeNamespace,
		Namespaces: r,
	}
}

func newHeader(mode Mode) header.Header {
	return *header.New(
		header.WithKind(DocumentKind),
		header.WithMetadata("scan-id", uuid.New().String()),
		header.WithMetadata("mode", mode.String()),
	)
}

// HasCollisions reports whether the wrapped report found any collision.
func (d *Document) HasCollisions() bool {
	if d.Mode == ModeNamespace {
		return d.Namespaces.HasCollisions()
	}
	return d.Result.HasCollisions()
}

// RenderText writes the console form of the document: invalid entries
// first, then the result block for the mode.
func (d *Document) RenderText(w io.Writer) error {
	p := &printer{w: w}

	var invalid []string
	if d.Mode == ModeNamespace {
		if d.Namespaces != nil {
			invalid = d.Namespaces.Invalid
		}
	} else if d.Result != nil {
		invalid = d.Result.Invalid
	}
	for _, entry := range invalid {
		p.printf(MsgInvalidEntry, entry)
	}

	switch d.Mode {
	case ModeNamespace:
		if !d.Namespaces.HasCollisions() {
			p.println(MsgNamespaceNone)
			break
		}
		p.println(MsgNamespaceFound)
		for _, ns := range d.Namespaces.Namespaces {
			p.printf(MsgNamespace, ns.Namespace)
			p.list(ns.Collisions)
		}
	case ModeFile:
		d.renderSingle(p, MsgFileNone, MsgFileFound)
	default:
		d.renderSingle(p, MsgGlobalNone, MsgGlobalFound)
	}

	return p.err
}

func (d *Document) renderSingle(p *printer, none, found string) {
	if !d.Result.HasCollisions() {
		p.println(none)
		return
	}
	p.println(found)
	p.list(d.Result.Collisions)
}

// printer keeps the first write error so rendering reads linearly.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) println(line string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, line)
}

func (p *printer) list(networks []string) {
	for _, n := range networks {
		p.printf(MsgCollisionLine, n)
	}
}
