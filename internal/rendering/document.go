package rendering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/freelance-desk/internal/placeholder"
	"github.com/jonathan/freelance-desk/internal/types"
)

// Kind names a document type.
type Kind string

// Document kinds shipped in the embedded catalog.
const (
	KindProposal     Kind = "proposal"
	KindContract     Kind = "contract"
	KindInvoice      Kind = "invoice"
	KindBudget       Kind = "budget"
	KindRequirements Kind = "requirements"
	KindCV           Kind = "cv"
	KindUAT          Kind = "uat"
)

// Document is one rendered document.
type Document struct {
	Kind      Kind
	Title     string
	Reference string
	Filename  string
	HTML      string
}

// Renderer renders every kind in a catalog. Layouts are parsed once, so a
// Renderer is safe for concurrent use.
type Renderer struct {
	catalog    *Catalog
	layouts    map[Kind]*placeholder.Template
	references map[Kind]*placeholder.Template
	page       *placeholder.Template
	now        func() time.Time
	newID      func() string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for document dates.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithIDGenerator sets the generator used for draft reference numbers.
func WithIDGenerator(fn func() string) Option {
	return func(r *Renderer) {
		r.newID = fn
	}
}

// NewRenderer parses every layout named by the catalog.
func NewRenderer(catalog *Catalog, opts ...Option) (*Renderer, error) {
	if catalog == nil {
		return nil, &TemplateError{Message: "catalog is nil"}
	}

	r := &Renderer{
		catalog:    catalog,
		layouts:    make(map[Kind]*placeholder.Template, len(catalog.Documents)),
		references: make(map[Kind]*placeholder.Template, len(catalog.Documents)),
		now:        time.Now,
		newID:      draftID,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, d := range catalog.Documents {
		content, err := catalog.readLayout(d.Layout)
		if err != nil {
			return nil, err
		}
		r.layouts[d.Kind] = placeholder.Parse(content, placeholder.WithEscaper(EscapeHTML))
		r.references[d.Kind] = placeholder.Parse(d.Reference)
	}

	page, err := catalog.readLayout(pageLayout)
	if err != nil {
		return nil, err
	}
	r.page = placeholder.Parse(page)

	return r, nil
}

// Kinds lists the kinds this renderer can produce.
func (r *Renderer) Kinds() []Kind {
	return r.catalog.Kinds()
}

// ParseKind validates a kind name against the catalog.
func (r *Renderer) ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := r.catalog.Lookup(kind); !ok {
		return "", unknownKind(kind, r.Kinds())
	}
	return kind, nil
}

// Render produces the HTML fragment for kind. Missing fields render as
// defaults; the only failure is an unknown kind.
func (r *Renderer) Render(kind Kind, rc types.RenderContext) (*Document, error) {
	spec, ok := r.catalog.Lookup(kind)
	if !ok {
		return nil, unknownKind(kind, nil)
	}

	data := r.buildData(spec, rc)
	doc := data["doc"].(map[string]any)

	return &Document{
		Kind:      kind,
		Title:     spec.Title,
		Reference: doc["reference"].(string),
		Filename:  filenameFor(spec, rc.Project),
		HTML:      r.layouts[kind].Render(data),
	}, nil
}

// RenderPage wraps a rendered fragment in a complete printable HTML page.
func (r *Renderer) RenderPage(d *Document) string {
	return r.page.Render(map[string]any{
		"doc": map[string]any{
			"title":     EscapeHTML(d.Title),
			"reference": EscapeHTML(d.Reference),
		},
		"body": d.HTML,
	})
}

func filenameFor(spec DocumentSpec, p types.Project) string {
	prefix := spec.Filename
	if prefix == "" {
		prefix = string(spec.Kind)
	}
	id := sanitizeFilename(p.ProjectID.String())
	if id == "" {
		return prefix
	}
	return prefix + "_" + id
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

func draftID() string {
	return "DRAFT-" + strings.ToUpper(uuid.NewString()[:8])
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
