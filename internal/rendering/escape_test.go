package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeHTML(""))
}

func TestEscapeHTML_PlainText(t *testing.T) {
	text := "Website Redesign 2024"
	assert.Equal(t, text, EscapeHTML(text))
}

func TestEscapeHTML_Ampersand(t *testing.T) {
	assert.Equal(t, "PT Maju &amp; Jaya", EscapeHTML("PT Maju & Jaya"))
}

func TestEscapeHTML_KeepsAngleBracketText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "email with name", input: "Budi <budi@example.com>", want: "Budi &lt;budi@example.com&gt;"},
		{name: "bracketed phase", input: "Phase <alpha> deliverable", want: "Phase &lt;alpha&gt; deliverable"},
		{name: "comparison text", input: "a<b and c>d", want: "a&lt;b and c&gt;d"},
		{name: "markup", input: "<b>bold</b>", want: "&lt;b&gt;bold&lt;/b&gt;"},
		{name: "quotes", input: `say "hi" it's`, want: "say &#34;hi&#34; it&#39;s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.input))
		})
	}
}

func TestEscapeHTML_NeutralisesMarkup(t *testing.T) {
	got := EscapeHTML(`<img src=x onerror="alert(1)">`)
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "&lt;img")
}

func TestEscapeHTML_UnicodeCharacters(t *testing.T) {
	text := "Rp 15.000.000 untuk résumé"
	assert.Equal(t, text, EscapeHTML(text))
}
