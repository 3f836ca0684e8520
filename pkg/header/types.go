package header

import (
	"fmt"
	"strings"
	"time"
)

var (
	ApiVersionDomain = "ipcollide.io"
	ApiVersionV1     = "v1"
)

const (
	// MetadataTimestamp is the metadata key holding the creation time.
	MetadataTimestamp = "scan-timestamp"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets Kind and derives APIVersion from it.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
		h.APIVersion = APIVersionFor(kind)
	}
}

// New creates a new Header with the provided functional options.
// The Metadata map is initialized and stamped with the creation time.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: map[string]string{
			MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// APIVersionFor returns "<kind>.ipcollide.io/v1" for kind.
func APIVersionFor(kind string) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), ApiVersionDomain, ApiVersionV1)
}

// Header carries Kubernetes-style kind, version and metadata for
// structured output.
type Header struct {
	// Kind is the type of the document.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
