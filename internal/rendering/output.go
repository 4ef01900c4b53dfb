package rendering

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Format is an output encoding for a rendered document.
type Format string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatPage Format = "page"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatHTML, FormatPage, FormatText, FormatPDF}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", &RenderError{Message: fmt.Sprintf("unknown output format %q", name)}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatPDF:
		return ".pdf"
	default:
		return ".html"
	}
}

// Encode converts a rendered document into the bytes of format f.
func (r *Renderer) Encode(ctx context.Context, d *Document, f Format, pdfTimeout time.Duration) ([]byte, error) {
	switch f {
	case FormatHTML:
		return []byte(d.HTML), nil
	case FormatPage:
		return []byte(r.RenderPage(d)), nil
	case FormatText:
		text, err := ExtractText(d.HTML)
		if err != nil {
			return nil, err
		}
		return []byte(text + "\n"), nil
	case FormatPDF:
		return PrintPDF(ctx, r.RenderPage(d), pdfTimeout)
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown output format %q", f)}
	}
}
