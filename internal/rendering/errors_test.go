package rendering

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TemplateError
		want string
	}{
		{name: "message only", err: &TemplateError{Message: "catalog is nil"}, want: "layout: catalog is nil"},
		{name: "with path", err: &TemplateError{Path: "invoice.html", Message: "file not found"}, want: "layout invoice.html: file not found"},
		{
			name: "with cause",
			err:  &TemplateError{Path: "layouts", Message: "layouts directory not found", Cause: fs.ErrNotExist},
			want: "layout layouts: layouts directory not found: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestRenderError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RenderError
		want string
	}{
		{name: "message only", err: &RenderError{Message: "unknown output format \"docx\""}, want: "render: unknown output format \"docx\""},
		{name: "with kind", err: &RenderError{Kind: KindInvoice, Message: "PDF printing failed"}, want: "render invoice: PDF printing failed"},
		{
			name: "unknown kind",
			err:  unknownKind("memo", []Kind{KindProposal, KindInvoice}),
			want: "render memo: not in the catalog (available: proposal, invoice): unknown document kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	tmplErr := &TemplateError{Message: "cannot read file", Cause: fs.ErrPermission}
	assert.True(t, errors.Is(tmplErr, fs.ErrPermission))

	renderErr := unknownKind("memo", nil)
	assert.True(t, errors.Is(renderErr, ErrUnknownKind))
	assert.False(t, errors.Is(&RenderError{Message: "x"}, ErrUnknownKind))
}
