package serializer

// Format is the output encoding of a Writer.
type Format string

const (
	// FormatText renders human-readable console text.
	FormatText Format = "text"

	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"

	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// StdoutURI is the special path indicating output should be written to stdout.
const StdoutURI = "-"

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}
