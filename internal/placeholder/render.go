package placeholder

import (
	"strconv"
	"strings"
)

type renderer struct {
	out    *strings.Builder
	escape Escaper
}

// scope is one level of the evaluation stack: the root context, or one
// iteration of an enclosing loop.
type scope struct {
	value  any
	index  int
	parent *scope
}

func (n *textNode) render(r *renderer, _ *scope) {
	r.out.WriteString(n.text)
}

func (n *variableNode) render(r *renderer, sc *scope) {
	v, ok := sc.resolve(n.path)
	if !ok {
		return
	}
	s := stringify(v)
	if r.escape != nil {
		s = r.escape(s)
	}
	r.out.WriteString(s)
}

func (n *ifNode) render(r *renderer, sc *scope) {
	v, _ := sc.resolve(n.cond)
	branch := n.els
	if truthy(v) {
		branch = n.then
	}
	for _, child := range branch {
		child.render(r, sc)
	}
}

func (n *eachNode) render(r *renderer, sc *scope) {
	v, _ := sc.resolve(n.list)
	items, ok := asList(v)
	if !ok || len(items) == 0 {
		for _, child := range n.els {
			child.render(r, sc)
		}
		return
	}

	for i, item := range items {
		frame := &scope{value: item, index: i, parent: sc}
		for _, child := range n.body {
			child.render(r, frame)
		}
	}
}

// resolve looks a path up. "this", "@index" and "@number" refer to the
// innermost loop element. Other paths are tried against each enclosing loop
// element that is a map, then against the root context.
func (sc *scope) resolve(path string) (any, bool) {
	switch {
	case path == "@index":
		if sc.index < 0 {
			return nil, false
		}
		return sc.index, true
	case path == "@number":
		if sc.index < 0 {
			return nil, false
		}
		return sc.index + 1, true
	case path == "this" || path == ".":
		return sc.value, sc.value != nil
	case strings.HasPrefix(path, "this."):
		return walk(sc.value, strings.Split(path[len("this."):], "."))
	}

	keys := strings.Split(path, ".")
	for cur := sc; cur != nil; cur = cur.parent {
		if cur.parent != nil {
			if _, isMap := asMap(cur.value); !isMap {
				continue
			}
		}
		if v, ok := walk(cur.value, keys); ok {
			return v, true
		}
	}
	return nil, false
}

// walk follows keys through nested maps and lists.
func walk(v any, keys []string) (any, bool) {
	cur := v
	for _, key := range keys {
		if key == "" {
			return nil, false
		}
		if m, ok := asMap(cur); ok {
			next, found := m[key]
			if !found {
				return nil, false
			}
			cur = next
			continue
		}
		if list, ok := asList(cur); ok {
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(list) {
				return nil, false
			}
			cur = list[idx]
			continue
		}
		return nil, false
	}
	return cur, cur != nil
}
