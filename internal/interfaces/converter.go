package interfaces

import "context"

// ConvertResult is the outcome of converting an uploaded document.
type ConvertResult struct {
	// Title extracted from the document itself (metadata or first heading).
	// Empty when the format carries no usable title; callers fall back to the
	// sanitized filename.
	Title string

	// HTML is the HTML-equivalent body awaiting the pipeline.
	HTML string
}

// DocumentConverter converts raw uploaded bytes of one document format into
// an HTML-equivalent string. Conversion is a collaborator boundary: each
// implementation wraps one format's tooling and reports failures as errors
// rather than producing partial output.
type DocumentConverter interface {
	// Extensions returns the lowercase file extensions (including the dot)
	// this converter accepts, e.g. [".md", ".markdown"].
	Extensions() []string

	// Convert transforms raw document bytes into HTML.
	Convert(ctx context.Context, data []byte) (*ConvertResult, error)
}

// ConvertService routes an upload to the converter registered for its
// extension. Unrecognized extensions are a validation error and no job is
// created.
type ConvertService interface {
	// Supported reports whether a filename's extension has a registered converter.
	Supported(filename string) bool

	// Convert validates the extension and converts the payload.
	Convert(ctx context.Context, filename string, data []byte) (*ConvertResult, error)
}
