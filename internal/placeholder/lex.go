package placeholder

import "strings"

const (
	leftDelim  = "{{"
	rightDelim = "}}"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenTag
)

// token is either a run of literal text or a single {{...}} tag.
// For tags, raw keeps the original markup so malformed blocks can be
// emitted verbatim.
type token struct {
	kind tokenKind
	raw  string
	body string // trimmed tag content, tags only
}

// lex splits a layout into text and tag tokens. A "{{" without a matching
// "}}" is kept as text.
func lex(layout string) []token {
	var tokens []token
	rest := layout

	for rest != "" {
		start := strings.Index(rest, leftDelim)
		if start < 0 {
			tokens = append(tokens, token{kind: tokenText, raw: rest})
			break
		}

		end := strings.Index(rest[start+len(leftDelim):], rightDelim)
		if end < 0 {
			tokens = append(tokens, token{kind: tokenText, raw: rest})
			break
		}
		end += start + len(leftDelim)

		if start > 0 {
			tokens = append(tokens, token{kind: tokenText, raw: rest[:start]})
		}

		raw := rest[start : end+len(rightDelim)]
		tokens = append(tokens, token{
			kind: tokenTag,
			raw:  raw,
			body: strings.TrimSpace(rest[start+len(leftDelim) : end]),
		})
		rest = rest[end+len(rightDelim):]
	}

	return tokens
}

type tagKind int

const (
	tagVariable tagKind = iota
	tagIf
	tagEach
	tagElse
	tagCloseIf
	tagCloseEach
	tagInvalid
)

// classify decodes a tag body into its kind and argument.
func classify(body string) (tagKind, string) {
	switch {
	case body == "":
		return tagInvalid, ""
	case body == "else":
		return tagElse, ""
	case body == "/if":
		return tagCloseIf, ""
	case body == "/each":
		return tagCloseEach, ""
	case strings.HasPrefix(body, "#if "):
		return blockArg(tagIf, body[len("#if "):])
	case strings.HasPrefix(body, "#each "):
		return blockArg(tagEach, body[len("#each "):])
	case strings.HasPrefix(body, "#"), strings.HasPrefix(body, "/"):
		return tagInvalid, ""
	case strings.ContainsAny(body, " \t\n"):
		return tagInvalid, ""
	default:
		return tagVariable, body
	}
}

func blockArg(kind tagKind, arg string) (tagKind, string) {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.ContainsAny(arg, " \t\n") {
		return tagInvalid, ""
	}
	return kind, arg
}
