package fcbuffer

import "fmt"

// Type expression grammar (spec.md §4.1/§6):
//
//	expr    := postfix
//	postfix := primary ( '?' | '[]' )*
//	primary := NAME | 'vector' '[' expr ']' | 'set' '[' expr ']'
//
// Examples: "uint8", "uint8?", "string[]", "string[]?", "vector[Person]",
// "set[fixed_bytes32]".

type exprKind int

const (
	exprName exprKind = iota
	exprVector
	exprSet
	exprOptional
)

// typeExpr is the parsed form of a type expression, before it is
// resolved against a registry of named codecs.
type typeExpr struct {
	kind  exprKind
	name  string // populated for exprName
	inner *typeExpr
}

// parseTypeExpr parses a single type expression. It does not resolve
// names; that happens in resolveTypeExpr once every type in a schema is
// known.
func parseTypeExpr(s string) (*typeExpr, error) {
	p := &exprParser{s: s}
	node, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("unexpected trailing input %q in type expression %q", p.s[p.pos:], s)
	}
	return node, nil
}

type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) parsePostfix() (*typeExpr, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peek() == '?':
			p.pos++
			node = &typeExpr{kind: exprOptional, inner: node}
		case p.peek() == '[' && p.peekAt(1) == ']':
			p.pos += 2
			node = &typeExpr{kind: exprVector, inner: node}
		default:
			return node, nil
		}
	}
}

func (p *exprParser) parsePrimary() (*typeExpr, error) {
	name := p.readIdent()
	if name == "" {
		return nil, fmt.Errorf("expected type name at position %d in %q", p.pos, p.s)
	}
	if p.peek() != '[' || p.peekAt(1) == ']' {
		// A bare name, or a name followed by the '[]' suffix that
		// parsePostfix handles.
		return &typeExpr{kind: exprName, name: name}, nil
	}

	if name != "vector" && name != "set" {
		return nil, fmt.Errorf("unexpected %q before '[' in type expression %q", name, p.s)
	}
	p.pos++ // consume '['
	inner, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek() != ']' {
		return nil, fmt.Errorf("expected ']' in type expression %q", p.s)
	}
	p.pos++

	kind := exprVector
	if name == "set" {
		kind = exprSet
	}
	return &typeExpr{kind: kind, inner: inner}, nil
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprParser) peekAt(n int) byte {
	if p.pos+n >= len(p.s) {
		return 0
	}
	return p.s[p.pos+n]
}

func (p *exprParser) readIdent() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		isIdentByte := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
		if !isIdentByte {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

// resolveTypeExpr walks a parsed type expression, resolving each leaf
// name through lookup and composing vector/set/optional wrappers around
// the result.
func resolveTypeExpr(expr *typeExpr, lookup func(name string) (Codec, error)) (Codec, error) {
	switch expr.kind {
	case exprName:
		return lookup(expr.name)
	case exprVector:
		inner, err := resolveTypeExpr(expr.inner, lookup)
		if err != nil {
			return nil, err
		}
		return NewVector(inner, false)
	case exprSet:
		inner, err := resolveTypeExpr(expr.inner, lookup)
		if err != nil {
			return nil, err
		}
		return NewSet(inner)
	case exprOptional:
		inner, err := resolveTypeExpr(expr.inner, lookup)
		if err != nil {
			return nil, err
		}
		return NewOptional(inner)
	default:
		return nil, fmt.Errorf("unknown type expression kind %d", expr.kind)
	}
}
