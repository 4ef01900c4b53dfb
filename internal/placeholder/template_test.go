package placeholder

import (
	"html"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Variables(t *testing.T) {
	ctx := map[string]any{
		"a":    map[string]any{"b": "x"},
		"n":    15000000.0,
		"f":    99.5,
		"i":    3,
		"ok":   true,
		"list": []any{"p", "q"},
		"nan":  math.NaN(),
	}

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{name: "nested path", layout: "{{a.b}}", want: "x"},
		{name: "missing leaf", layout: "[{{a.c}}]", want: "[]"},
		{name: "missing root", layout: "[{{zzz.b}}]", want: "[]"},
		{name: "path through scalar", layout: "[{{a.b.c}}]", want: "[]"},
		{name: "whitespace in tag", layout: "{{ a.b }}", want: "x"},
		{name: "integral float", layout: "{{n}}", want: "15000000"},
		{name: "decimal float", layout: "{{f}}", want: "99.5"},
		{name: "int", layout: "{{i}}", want: "3"},
		{name: "bool", layout: "{{ok}}", want: "true"},
		{name: "list joins", layout: "{{list}}", want: "p,q"},
		{name: "list index", layout: "{{list.1}}", want: "q"},
		{name: "nan renders empty", layout: "[{{nan}}]", want: "[]"},
		{name: "map renders empty", layout: "[{{a}}]", want: "[]"},
		{name: "plain text", layout: "no markup", want: "no markup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.layout, ctx))
		})
	}
}

func TestRender_If(t *testing.T) {
	layout := "{{#if flag}}TEXT{{/if}}"

	truthyValues := []any{true, "yes", 1, 2.5, []any{"x"}, map[string]any{"k": 1}}
	for _, v := range truthyValues {
		assert.Equal(t, "TEXT", Render(layout, map[string]any{"flag": v}), "value %#v", v)
	}

	falsyValues := []any{nil, false, "", 0, 0.0, math.NaN(), []any{}, map[string]any{}}
	for _, v := range falsyValues {
		assert.Equal(t, "", Render(layout, map[string]any{"flag": v}), "value %#v", v)
	}

	assert.Equal(t, "", Render(layout, map[string]any{}))
}

func TestRender_IfElse(t *testing.T) {
	layout := "{{#if p.long}}{{p.long}}{{else}}{{p.short}}{{/if}}"

	assert.Equal(t, "L", Render(layout, map[string]any{"p": map[string]any{"long": "L", "short": "S"}}))
	assert.Equal(t, "S", Render(layout, map[string]any{"p": map[string]any{"short": "S"}}))
}

func TestRender_Each(t *testing.T) {
	layout := "{{#each items}}{{this}}-{{@index}}{{/each}}"

	assert.Equal(t, "p-0q-1", Render(layout, map[string]any{"items": []any{"p", "q"}}))
	assert.Equal(t, "p-0q-1", Render(layout, map[string]any{"items": []string{"p", "q"}}))
	assert.Equal(t, "", Render(layout, map[string]any{"items": "not a list"}))
	assert.Equal(t, "", Render(layout, map[string]any{}))
}

func TestRender_EachNumber(t *testing.T) {
	layout := "{{#each items}}FR-{{@number}} {{this}};{{/each}}[{{@number}}]"

	assert.Equal(t, "FR-1 a;FR-2 b;[]", Render(layout, map[string]any{"items": []any{"a", "b"}}))
}

func TestRender_EachElse(t *testing.T) {
	layout := "<ul>{{#each d}}<li>{{this}}</li>{{else}}<li>none</li>{{/each}}</ul>"

	assert.Equal(t, "<ul><li>a</li></ul>", Render(layout, map[string]any{"d": []any{"a"}}))
	assert.Equal(t, "<ul><li>none</li></ul>", Render(layout, map[string]any{"d": []any{}}))
}

func TestRender_EachOverMaps(t *testing.T) {
	ctx := map[string]any{
		"currency": "IDR",
		"rows": []any{
			map[string]any{"item": "Hosting", "cost": 500000},
			map[string]any{"item": "Domain", "cost": 200000},
		},
	}

	got := Render("{{#each rows}}{{@index}}:{{this.item}}={{cost}} {{currency}};{{/each}}", ctx)
	assert.Equal(t, "0:Hosting=500000 IDR;1:Domain=200000 IDR;", got)
}

func TestRender_Nested(t *testing.T) {
	ctx := map[string]any{
		"project": map[string]any{
			"features": []any{"Login", "Reports"},
		},
		"groups": []any{
			map[string]any{"name": "A", "items": []any{"a1", "a2"}},
			map[string]any{"name": "B", "items": []any{}},
		},
	}

	t.Run("each inside if", func(t *testing.T) {
		layout := "{{#if project.features}}<ul>{{#each project.features}}<li>{{this}}</li>{{/each}}</ul>{{/if}}"
		assert.Equal(t, "<ul><li>Login</li><li>Reports</li></ul>", Render(layout, ctx))
	})

	t.Run("if inside each", func(t *testing.T) {
		layout := "{{#each project.features}}{{#if @index}},{{/if}}{{this}}{{/each}}"
		assert.Equal(t, "Login,Reports", Render(layout, ctx))
	})

	t.Run("each inside each", func(t *testing.T) {
		layout := "{{#each groups}}{{name}}[{{#each items}}{{this}}@{{@index}}{{else}}-{{/each}}]{{/each}}"
		assert.Equal(t, "A[a1@0a2@1]B[-]", Render(layout, ctx))
	})

	t.Run("if inside if with else", func(t *testing.T) {
		layout := "{{#if project}}{{#if missing}}x{{else}}y{{/if}}{{/if}}"
		assert.Equal(t, "y", Render(layout, ctx))
	})
}

func TestRender_MalformedMarkupIsLiteral(t *testing.T) {
	ctx := map[string]any{"a": "A"}

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{name: "unclosed if", layout: "{{#if a}}body {{a}}", want: "{{#if a}}body A"},
		{name: "stray close", layout: "{{a}}{{/if}}", want: "A{{/if}}"},
		{name: "stray else", layout: "{{else}}{{a}}", want: "{{else}}A"},
		{name: "empty tag", layout: "{{}}{{a}}", want: "{{}}A"},
		{name: "unterminated delimiter", layout: "{{a}} {{a", want: "A {{a"},
		{name: "if without argument", layout: "{{#if }}x{{/if}}", want: "{{#if }}x{{/if}}"},
		{name: "unknown helper", layout: "{{#with a}}x", want: "{{#with a}}x"},
		{
			name:   "unclosed inner block closed by outer",
			layout: "{{#if a}}{{#each a}}x{{/if}}",
			want:   "{{#each a}}x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.layout, ctx))
		})
	}
}

func TestRender_Escaper(t *testing.T) {
	ctx := map[string]any{"name": "<b>AT&T</b>"}
	tmpl := Parse("<p>{{name}}</p>", WithEscaper(html.EscapeString))

	assert.Equal(t, "<p>&lt;b&gt;AT&amp;T&lt;/b&gt;</p>", tmpl.Render(ctx))
}

func TestTemplate_Reusable(t *testing.T) {
	tmpl := Parse("Hello {{name}}")

	assert.Equal(t, "Hello A", tmpl.Render(map[string]any{"name": "A"}))
	assert.Equal(t, "Hello B", tmpl.Render(map[string]any{"name": "B"}))
	assert.Equal(t, "Hello ", tmpl.Render(nil))
}

func TestRender_LargeLayout(t *testing.T) {
	layout := strings.Repeat("{{#each xs}}{{this}}{{/each}}|", 100)
	got := Render(layout, map[string]any{"xs": []any{1, 2}})
	assert.Equal(t, strings.Repeat("12|", 100), got)
}
