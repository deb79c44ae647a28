package filter

import "strings"

var keywords = map[string]TokenType{
	"SELECT": TokenSelect,
	"FROM":   TokenFrom,
	"JOIN":   TokenJoin,
	"ON":     TokenOn,
	"WHERE":  TokenWhere,
	"ORDER":  TokenOrder,
	"BY":     TokenBy,
	"AS":     TokenAs,
	"ASC":    TokenAsc,
	"DESC":   TokenDesc,
	"AND":    TokenAnd,
	"OR":     TokenOr,
	"INSERT": TokenInsert,
	"INTO":   TokenInto,
	"VALUES": TokenValues,
}

// Lexer tokenizes condition and statement text.
type Lexer struct {
	input string
	pos   int
	ch    byte
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos - 1
	var tok Token

	switch {
	case l.ch == 0:
		tok = Token{Type: TokenEOF, Pos: len(l.input)}
	case l.ch == ',':
		tok = Token{Type: TokenComma, Value: ",", Pos: start}
		l.readChar()
	case l.ch == '(':
		tok = Token{Type: TokenLeftParen, Value: "(", Pos: start}
		l.readChar()
	case l.ch == ')':
		tok = Token{Type: TokenRightParen, Value: ")", Pos: start}
		l.readChar()
	case l.ch == '=':
		tok = Token{Type: TokenEqual, Value: "=", Pos: start}
		l.readChar()
	case l.ch == '<':
		tok = Token{Type: TokenLess, Value: "<", Pos: start}
		l.readChar()
	case l.ch == '>':
		tok = Token{Type: TokenGreater, Value: ">", Pos: start}
		l.readChar()
	case l.ch == '*':
		tok = Token{Type: TokenStar, Value: "*", Pos: start}
		l.readChar()
	case l.ch == '"' || l.ch == '\'':
		value, ok := l.readString(l.ch)
		if !ok {
			return Token{Type: TokenError, Value: "unterminated string literal", Pos: start}
		}
		tok = Token{Type: TokenString, Value: value, Pos: start}
	case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
		tok = Token{Type: TokenNumber, Value: l.readNumber(), Pos: start}
	case isIdentChar(l.ch):
		value := l.readIdentifier()
		if keyword, ok := keywords[strings.ToUpper(value)]; ok {
			tok = Token{Type: keyword, Value: value, Pos: start}
		} else {
			tok = Token{Type: TokenIdent, Value: value, Pos: start}
		}
	default:
		tok = Token{Type: TokenError, Value: string(l.ch), Pos: start}
		l.readChar()
	}

	return tok
}

// Tokenize returns all tokens in the input, ending with an EOF token.
// Lexing stops at the first error token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			return tokens
		}
	}
}

// readString consumes a quoted string and returns its content verbatim.
// There are no escape sequences. ok is false when the closing quote is
// missing.
func (l *Lexer) readString(quote byte) (value string, ok bool) {
	l.readChar()
	start := l.pos - 1
	for l.ch != quote && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return "", false
	}
	value = l.input[start : l.pos-1]
	l.readChar()
	return value, true
}

// readNumber consumes numeric text: an optional leading minus, digits and
// dots. Whether the text is a valid number is decided later by IsNumber.
func (l *Lexer) readNumber() string {
	start := l.pos - 1
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

func (l *Lexer) readIdentifier() string {
	start := l.pos - 1
	for isIdentChar(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
		ch == '_' || ch == '.' || ch == '-' || ch == '/'
}
