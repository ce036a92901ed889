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

// typeexpr parses and resolves type expressions written in the declaration syntax:
//
//  str | int
//  ReadOnly[NotRequired[list[int]]]
//  Callable[[object], TypeIs[str]]
//  Mapping[str, int | None]
package typeexpr

import (
	"fmt"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	IDENT
	LSQUARE // "["
	RSQUARE // "]"
	COMMA   // ","
	PIPE    // "|"
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case IDENT:
		return "name"
	case LSQUARE:
		return `"["`
	case RSQUARE:
		return `"]"`
	case COMMA:
		return `","`
	case PIPE:
		return `"|"`
	}
	return "invalid token"
}

// Token is a lexical token with its byte offset in the source.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    int
}

// SyntaxError is returned for malformed type expressions.
type SyntaxError struct {
	Pos int
	Msg string
	Src string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Pos, e.Src, e.Msg)
}

type lexer struct {
	src string
	cur int
}

func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (l *lexer) skipWhitespace() {
	for l.cur < len(l.src) {
		switch l.src[l.cur] {
		case ' ', '\t', '\n', '\r':
			l.cur++
		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespace()
	if l.cur >= len(l.src) {
		return Token{Type: EOF, Pos: l.cur}, nil
	}
	start := l.cur
	c := l.src[l.cur]
	switch c {
	case '[':
		l.cur++
		return Token{LSQUARE, "[", start}, nil
	case ']':
		l.cur++
		return Token{RSQUARE, "]", start}, nil
	case ',':
		l.cur++
		return Token{COMMA, ",", start}, nil
	case '|':
		l.cur++
		return Token{PIPE, "|", start}, nil
	}
	if !isAlpha(c) {
		return Token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c), Src: l.src}
	}
	// Dotted names are permitted: `typing.ReadOnly`
	for l.cur < len(l.src) && (isAlphaNum(l.src[l.cur]) || l.src[l.cur] == '.') {
		l.cur++
	}
	if l.src[l.cur-1] == '.' {
		return Token{}, &SyntaxError{Pos: l.cur - 1, Msg: "name cannot end with \".\"", Src: l.src}
	}
	return Token{IDENT, l.src[start:l.cur], start}, nil
}

// Tokenize splits src into tokens, ending with an EOF token.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}
