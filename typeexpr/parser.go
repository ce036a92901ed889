// The MIT License (MIT)
//
// Copyright (c) 2026 The shapes Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeexpr

import (
	"strings"
)

// Expr is a parsed type expression.
type Expr interface {
	Position() int
}

// Name: `int`
type Name struct {
	Name string
	Pos  int
}

// Subscript: `list[int]`
type Subscript struct {
	Base *Name
	Args []Expr
}

// Union: `int | str`
type Union struct {
	Members []Expr
}

// List of types, only valid as the argument list of `Callable`: `[int, str]`
type List struct {
	Elems []Expr
	Pos   int
}

func (e *Name) Position() int      { return e.Pos }
func (e *Subscript) Position() int { return e.Base.Pos }
func (e *Union) Position() int     { return e.Members[0].Position() }
func (e *List) Position() int      { return e.Pos }

type parser struct {
	src  string
	toks []Token
	cur  int
}

// Parse a type expression.
func Parse(src string) (Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, p.errorf(tok, "unexpected "+tok.Type.String())
	}
	return e, nil
}

func (p *parser) peek() Token { return p.toks[p.cur] }

func (p *parser) advance() Token {
	tok := p.toks[p.cur]
	if tok.Type != EOF {
		p.cur++
	}
	return tok
}

func (p *parser) errorf(tok Token, msg string) error {
	return &SyntaxError{Pos: tok.Pos, Msg: msg, Src: p.src}
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected "+tt.String()+", found "+tok.Type.String())
	}
	return tok, nil
}

func (p *parser) expr() (Expr, error) {
	first, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != PIPE {
		return first, nil
	}
	u := &Union{Members: []Expr{first}}
	for p.peek().Type == PIPE {
		p.advance()
		m, err := p.primary()
		if err != nil {
			return nil, err
		}
		u.Members = append(u.Members, m)
	}
	return u, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case IDENT:
		name := &Name{Name: tok.Lexeme, Pos: tok.Pos}
		if p.peek().Type != LSQUARE {
			return name, nil
		}
		p.advance()
		args, err := p.args(false)
		if err != nil {
			return nil, err
		}
		return &Subscript{Base: name, Args: args}, nil
	case LSQUARE:
		elems, err := p.args(true)
		if err != nil {
			return nil, err
		}
		return &List{Elems: elems, Pos: tok.Pos}, nil
	}
	return nil, p.errorf(tok, "expected a type, found "+tok.Type.String())
}

// Parse comma-separated arguments up to and including the closing bracket.
func (p *parser) args(allowEmpty bool) ([]Expr, error) {
	var args []Expr
	if p.peek().Type == RSQUARE {
		tok := p.advance()
		if !allowEmpty {
			return nil, p.errorf(tok, "expected at least one type argument")
		}
		return args, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().Type != COMMA {
			break
		}
		p.advance()
		if p.peek().Type == RSQUARE {
			break
		}
	}
	if _, err := p.expect(RSQUARE); err != nil {
		return nil, err
	}
	return args, nil
}

// ExprString returns a normalized string representation of a type expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Name:
		sb.WriteString(e.Name)
	case *Subscript:
		sb.WriteString(e.Base.Name)
		sb.WriteByte('[')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, arg)
		}
		sb.WriteByte(']')
	case *Union:
		for i, m := range e.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			exprString(sb, m)
		}
	case *List:
		sb.WriteByte('[')
		for i, elem := range e.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, elem)
		}
		sb.WriteByte(']')
	}
}
