// Package placeholder implements the {{...}} substitution engine used by
// document layouts.
//
// Supported markup:
//
//	{{path.to.field}}                 value lookup, empty when missing
//	{{#if path}}...{{else}}...{{/if}}   conditional, else is optional
//	{{#each path}}...{{else}}...{{/each}} loop over a list
//	{{this}} {{this.key}}             current loop element
//	{{@index}} {{@number}}            zero- and one-based loop position
//
// Layouts are parsed into a node tree, so blocks nest freely. Rendering never
// fails: unresolved values render empty and malformed markup renders as text.
package placeholder

import "strings"

// Escaper transforms substituted values before they are written.
type Escaper func(string) string

// Option configures a Template.
type Option func(*Template)

// WithEscaper applies fn to every substituted value. Literal layout text is
// never escaped.
func WithEscaper(fn Escaper) Option {
	return func(t *Template) {
		t.escape = fn
	}
}

// Template is a parsed layout. It is immutable and safe for concurrent use.
type Template struct {
	nodes  []node
	escape Escaper
}

// Parse parses a layout. It never fails.
func Parse(layout string, opts ...Option) *Template {
	t := &Template{nodes: parse(layout)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render evaluates the template against ctx.
func (t *Template) Render(ctx any) string {
	var sb strings.Builder
	r := &renderer{out: &sb, escape: t.escape}
	root := &scope{value: ctx, index: -1}
	for _, n := range t.nodes {
		n.render(r, root)
	}
	return sb.String()
}

// Render parses layout and evaluates it against ctx in one step.
func Render(layout string, ctx any, opts ...Option) string {
	return Parse(layout, opts...).Render(ctx)
}
