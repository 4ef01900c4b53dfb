// Package rendering turns a client, project and settings record into
// printable business documents.
package rendering

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is matched by errors.Is for a document kind the catalog
// does not list.
var ErrUnknownKind = errors.New("unknown document kind")

// TemplateError reports a layout or catalog that cannot be loaded. Path is
// the file or directory involved, when there is one.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := "layout: " + e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("layout %s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying file system or YAML error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a document that could not be produced from a loaded
// catalog. Kind is empty when the failure is not tied to one document.
type RenderError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := "render: " + e.Message
	if e.Kind != "" {
		msg = fmt.Sprintf("render %s: %s", e.Kind, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

func unknownKind(kind Kind, available []Kind) *RenderError {
	msg := "not in the catalog"
	if len(available) > 0 {
		msg = fmt.Sprintf("not in the catalog (available: %s)", joinKinds(available))
	}
	return &RenderError{Kind: kind, Message: msg, Cause: ErrUnknownKind}
}
