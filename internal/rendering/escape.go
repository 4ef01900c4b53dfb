package rendering

import "html"

// EscapeHTML makes a stored value safe to place inside a layout. The text is
// kept as entered and HTML special characters are entity-escaped.
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}
	return html.EscapeString(text)
}
