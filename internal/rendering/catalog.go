package rendering

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed layouts
var embeddedLayouts embed.FS

const (
	catalogFile = "catalog.yaml"
	pageLayout  = "page.html"
)

// DocumentSpec describes one document kind.
type DocumentSpec struct {
	Kind      Kind   `yaml:"kind"`
	Title     string `yaml:"title"`
	Layout    string `yaml:"layout"`
	Filename  string `yaml:"filename"`
	Reference string `yaml:"reference"`
}

// Catalog is the set of document kinds and the layouts that render them.
type Catalog struct {
	Documents []DocumentSpec `yaml:"documents"`
	Skills    []string       `yaml:"skills"`

	fsys fs.FS
}

// DefaultCatalog loads the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embeddedLayouts, "layouts")
	if err != nil {
		return nil, &TemplateError{Message: "failed to open embedded layouts", Cause: err}
	}
	return loadCatalogFS(sub, "embedded layouts")
}

// LoadCatalog loads a catalog from dir. An empty dir selects the embedded
// layouts.
func LoadCatalog(dir string) (*Catalog, error) {
	if dir == "" {
		return DefaultCatalog()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &TemplateError{Path: dir, Message: "layouts directory not found", Cause: err}
	}
	if !info.IsDir() {
		return nil, &TemplateError{Path: dir, Message: "layouts path is not a directory"}
	}
	return loadCatalogFS(os.DirFS(dir), dir)
}

func loadCatalogFS(fsys fs.FS, origin string) (*Catalog, error) {
	content, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateError{Message: fmt.Sprintf("catalog not found in %s", origin)}
		}
		return nil, &TemplateError{Message: "failed to read catalog", Cause: err}
	}

	var c Catalog
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, &TemplateError{Message: "failed to parse catalog YAML", Cause: err}
	}
	if len(c.Documents) == 0 {
		return nil, &TemplateError{Message: fmt.Sprintf("catalog in %s lists no documents", origin)}
	}

	seen := make(map[Kind]bool, len(c.Documents))
	for _, d := range c.Documents {
		if d.Kind == "" || d.Layout == "" {
			return nil, &TemplateError{Message: "catalog entry needs kind and layout"}
		}
		if seen[d.Kind] {
			return nil, &TemplateError{Message: fmt.Sprintf("duplicate document kind %q", d.Kind)}
		}
		seen[d.Kind] = true
	}

	c.fsys = fsys
	return &c, nil
}

// Lookup returns the spec for kind.
func (c *Catalog) Lookup(kind Kind) (DocumentSpec, bool) {
	for _, d := range c.Documents {
		if d.Kind == kind {
			return d, true
		}
	}
	return DocumentSpec{}, false
}

// Kinds lists the document kinds in catalog order.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.Documents))
	for _, d := range c.Documents {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

func (c *Catalog) readLayout(name string) (string, error) {
	content, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateError{Path: name, Message: "file not found"}
		}
		return "", &TemplateError{Path: name, Message: "cannot read file", Cause: err}
	}
	return string(content), nil
}
