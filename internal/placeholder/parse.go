package placeholder

// node is one element of a parsed layout.
type node interface {
	render(r *renderer, sc *scope)
}

type textNode struct {
	text string
}

type variableNode struct {
	path string
}

type ifNode struct {
	cond string
	then []node
	els  []node
}

type eachNode struct {
	list string
	body []node
	els  []node
}

type endReason int

const (
	endEOF endReason = iota
	endClose
	endElse
	endOuterClose
)

type parser struct {
	tokens []token
	pos    int
	// closers holds the close tag expected by every open block, innermost last.
	closers []tagKind
}

func parse(layout string) []node {
	p := &parser{tokens: lex(layout)}
	nodes, _ := p.parseList(false)
	return nodes
}

// parseList consumes tokens until the innermost block's close tag, an
// {{else}} when allowElse is set, a close tag belonging to an enclosing
// block (left unconsumed), or the end of input.
func (p *parser) parseList(allowElse bool) ([]node, endReason) {
	var nodes []node

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		if tok.kind == tokenText {
			nodes = appendText(nodes, tok.raw)
			continue
		}

		kind, arg := classify(tok.body)
		switch kind {
		case tagVariable:
			nodes = append(nodes, &variableNode{path: arg})

		case tagIf, tagEach:
			nodes = p.parseBlock(nodes, tok, kind, arg)

		case tagElse:
			if allowElse {
				return nodes, endElse
			}
			nodes = appendText(nodes, tok.raw)

		case tagCloseIf, tagCloseEach:
			if n := len(p.closers); n > 0 && p.closers[n-1] == kind {
				return nodes, endClose
			}
			if p.isOuterCloser(kind) {
				p.pos--
				return nodes, endOuterClose
			}
			nodes = appendText(nodes, tok.raw)

		default:
			nodes = appendText(nodes, tok.raw)
		}
	}

	return nodes, endEOF
}

// parseBlock parses the body of an {{#if}} or {{#each}} opened by tok and
// appends the result to nodes. An unclosed block degrades to literal text:
// the opening tag is kept verbatim and its contents are spliced in place.
func (p *parser) parseBlock(nodes []node, tok token, kind tagKind, arg string) []node {
	closer := tagCloseIf
	if kind == tagEach {
		closer = tagCloseEach
	}

	p.closers = append(p.closers, closer)
	body, end := p.parseList(true)

	var els []node
	hasElse := end == endElse
	if hasElse {
		els, end = p.parseList(false)
	}
	p.closers = p.closers[:len(p.closers)-1]

	if end != endClose {
		nodes = appendText(nodes, tok.raw)
		nodes = append(nodes, body...)
		if hasElse {
			nodes = appendText(nodes, leftDelim+"else"+rightDelim)
			nodes = append(nodes, els...)
		}
		return nodes
	}

	if kind == tagIf {
		return append(nodes, &ifNode{cond: arg, then: body, els: els})
	}
	return append(nodes, &eachNode{list: arg, body: body, els: els})
}

func (p *parser) isOuterCloser(kind tagKind) bool {
	for i := len(p.closers) - 2; i >= 0; i-- {
		if p.closers[i] == kind {
			return true
		}
	}
	return false
}

// appendText merges adjacent literal runs.
func appendText(nodes []node, text string) []node {
	if text == "" {
		return nodes
	}
	if n := len(nodes); n > 0 {
		if last, ok := nodes[n-1].(*textNode); ok {
			last.text += text
			return nodes
		}
	}
	return append(nodes, &textNode{text: text})
}
