package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Serializer writes data in some output format.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers that own their destination.
type Closer interface {
	Close() error
}

// TextRenderer is implemented by values that know their console form.
// Writers in FormatText defer to it.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// Writer serializes data to an io.Writer in the configured format.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output. Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, falling back to json", "format", string(format))
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer that writes to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for path, or a stdout Writer when
// path is empty or "-". The caller should Close the returned serializer.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Format returns the effective output format.
func (w *Writer) Format() Format {
	return w.format
}

// Serialize writes data in the writer's format.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatText:
		return w.serializeText(data)
	case FormatYAML:
		return w.serializeYAML(data)
	default:
		return w.serializeJSON(data)
	}
}

// Close closes the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func (w *Writer) serializeText(data any) error {
	if r, ok := data.(TextRenderer); ok {
		if err := r.RenderText(w.output); err != nil {
			return fmt.Errorf("failed to render text: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(w.output, data); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func (w *Writer) serializeJSON(data any) error {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	if _, err := fmt.Fprintln(w.output, string(j)); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(data any) error {
	enc := yaml.NewEncoder(w.output)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml: %w", err)
	}
	return nil
}
