package eforms

import (
	"strconv"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// All tree access goes through the four primitives below, so the
// absent-vs-error distinction is made in exactly one place: a missing or
// empty match is nil, never an error.

var (
	exprMu    sync.Mutex
	exprCache = map[string]*xpath.Expr{}
)

// compile resolves a path against the fixed namespace table, caching the
// compiled expression. Paths are package-internal constants plus a
// configured language tag, so a compile failure is a programming error
// and is treated as "no match".
func compile(path string) *xpath.Expr {
	exprMu.Lock()
	defer exprMu.Unlock()

	if e, ok := exprCache[path]; ok {
		return e
	}
	e, err := xpath.CompileWithNS(path, namespaces)
	if err != nil {
		return nil
	}
	exprCache[path] = e
	return e
}

// Text returns the text content of the first node matching path under n,
// or nil when there is no match or the matched text is empty.
func Text(n *xmlquery.Node, path string) *string {
	e := compile(path)
	if e == nil {
		return nil
	}
	m := xmlquery.QuerySelector(n, e)
	if m == nil {
		return nil
	}
	s := strings.TrimSpace(m.InnerText())
	if s == "" {
		return nil
	}
	return &s
}

// Attr returns the named attribute of the first node matching path, or nil.
func Attr(n *xmlquery.Node, path, name string) *string {
	e := compile(path)
	if e == nil {
		return nil
	}
	m := xmlquery.QuerySelector(n, e)
	if m == nil {
		return nil
	}
	v := m.SelectAttr(name)
	if v == "" {
		return nil
	}
	return &v
}

// Num returns Text(n, path) parsed as a decimal. Empty or non-numeric text
// degrades to nil; it never panics and never reports an error.
func Num(n *xmlquery.Node, path string) *float64 {
	t := Text(n, path)
	if t == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*t, 64)
	if err != nil {
		return nil
	}
	return &f
}

// All returns every node matching path under n, in document order.
func All(n *xmlquery.Node, path string) []*xmlquery.Node {
	e := compile(path)
	if e == nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(n, e)
}

// First returns the first node matching path under n, or nil.
func First(n *xmlquery.Node, path string) *xmlquery.Node {
	e := compile(path)
	if e == nil {
		return nil
	}
	return xmlquery.QuerySelector(n, e)
}

// Document-level conveniences.

func (d *Document) Text(path string) *string         { return Text(d.root, path) }
func (d *Document) Attr(path, name string) *string   { return Attr(d.root, path, name) }
func (d *Document) Num(path string) *float64         { return Num(d.root, path) }
func (d *Document) All(path string) []*xmlquery.Node { return All(d.root, path) }
func (d *Document) First(path string) *xmlquery.Node { return First(d.root, path) }
