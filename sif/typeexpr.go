package sif

import (
	"fmt"
	"strings"

	"github.com/declink/declink/decl"
)

// ParseTypeExpr parses a type expression string into a type tree.
//
//	expr := name [ "[" expr ("," expr)* "]" ]
//	name := ident ("." ident)*
//
// The base names union and optional are special forms: union members are
// flattened and deduplicated, and optional[x] expands to a union of x and
// none. Every other name becomes a symbolic reference for later linking.
func ParseTypeExpr(src string) (decl.Type, error) {
	s := &exprScanner{src: src}
	t, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.pos != len(s.src) {
		return nil, fmt.Errorf("trailing input %q in type expression %q", s.src[s.pos:], s.src)
	}
	return t, nil
}

type exprScanner struct {
	src string
	pos int
}

func (s *exprScanner) parseExpr() (decl.Type, error) {
	name, err := s.parseName()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '[' {
		return &decl.NamedType{Name: name}, nil
	}
	s.pos++

	var args []decl.Type
	for {
		s.skipSpace()
		arg, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, fmt.Errorf("missing ] in type expression %q", s.src)
		}
		switch s.src[s.pos] {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return s.apply(name, args)
		default:
			return nil, fmt.Errorf("unexpected %q in type expression %q", string(s.src[s.pos]), s.src)
		}
	}
}

// apply builds the node for a bracketed application.
func (s *exprScanner) apply(name string, args []decl.Type) (decl.Type, error) {
	switch name {
	case "union":
		return decl.NewUnion(args), nil
	case "optional":
		if len(args) != 1 {
			return nil, fmt.Errorf("optional takes exactly one argument in %q", s.src)
		}
		return decl.NewUnion([]decl.Type{args[0], &decl.NamedType{Name: "none"}}), nil
	default:
		return &decl.GenericType{Base: &decl.NamedType{Name: name}, Args: args}, nil
	}
}

func (s *exprScanner) parseName() (string, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) && isNameByte(s.src[s.pos]) {
		s.pos++
	}
	name := s.src[start:s.pos]
	if name == "" {
		return "", fmt.Errorf("expected a name at offset %d in type expression %q", start, s.src)
	}
	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return "", fmt.Errorf("empty segment in name %q", name)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return "", fmt.Errorf("segment %q must not start with a digit", segment)
		}
	}
	return name, nil
}

func (s *exprScanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func isNameByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
