package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT TokenType = "IDENT" // main, foo, _print
	INT   TokenType = "INT"   // 12345

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	PLUS_PLUS   TokenType = "++"
	MINUS_MINUS TokenType = "--"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	INT_TYPE TokenType = "INT_TYPE"
	VOID     TokenType = "VOID"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	RETURN   TokenType = "RETURN"
	AND      TokenType = "AND" // and, &&
	OR       TokenType = "OR"  // or, ||
)

var keywords = map[string]TokenType{
	"int":    INT_TYPE,
	"void":   VOID,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"and":    AND,
	"or":     OR,
}

// Lexer turns NUL-terminated MiniC source into tokens, one at a time.
type Lexer struct {
	input []byte
	pos   int // current reading position in input
	line  int
	col   int

	// Current token state
	CurrTokenType TokenType
	CurrLiteral   string
	CurrIntValue  int64 // only meaningful when CurrTokenType == INT
	TokenLine     int
	TokenColumn   int

	Errors *ErrorCollection
}

// NewLexer creates a lexer over input, which must end with a 0 byte.
func NewLexer(input []byte) *Lexer {
	if len(input) == 0 || input[len(input)-1] != 0 {
		input = append(input, 0)
	}
	return &Lexer{
		input:  input,
		line:   1,
		col:    1,
		Errors: NewErrorCollection(),
	}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) emit(typ TokenType, n int) {
	l.CurrTokenType = typ
	l.CurrLiteral = string(l.input[l.pos : l.pos+n])
	l.advance(n)
}

// NextToken scans the next token and stores it in the lexer.
// Call repeatedly until CurrTokenType == EOF.
func (l *Lexer) NextToken() {
	l.skipWhitespaceAndComments()

	c := l.input[l.pos]
	l.CurrIntValue = 0
	l.TokenLine = l.line
	l.TokenColumn = l.col

	switch c {
	case 0:
		l.CurrTokenType = EOF
		l.CurrLiteral = ""
	case '=':
		if l.peekByte(1) == '=' {
			l.emit(EQ, 2)
		} else {
			l.emit(ASSIGN, 1)
		}
	case '+':
		if l.peekByte(1) == '+' {
			l.emit(PLUS_PLUS, 2)
		} else {
			l.emit(PLUS, 1)
		}
	case '-':
		if l.peekByte(1) == '-' {
			l.emit(MINUS_MINUS, 2)
		} else {
			l.emit(MINUS, 1)
		}
	case '!':
		if l.peekByte(1) == '=' {
			l.emit(NOT_EQ, 2)
		} else {
			l.emit(BANG, 1)
		}
	case '<':
		if l.peekByte(1) == '=' {
			l.emit(LE, 2)
		} else {
			l.emit(LT, 1)
		}
	case '>':
		if l.peekByte(1) == '=' {
			l.emit(GE, 2)
		} else {
			l.emit(GT, 1)
		}
	case '&':
		if l.peekByte(1) == '&' {
			l.emit(AND, 2)
		} else {
			l.illegal()
		}
	case '|':
		if l.peekByte(1) == '|' {
			l.emit(OR, 2)
		} else {
			l.illegal()
		}
	case '*':
		l.emit(ASTERISK, 1)
	case '/':
		l.emit(SLASH, 1)
	case '%':
		l.emit(PERCENT, 1)
	case ',':
		l.emit(COMMA, 1)
	case ';':
		l.emit(SEMICOLON, 1)
	case '(':
		l.emit(LPAREN, 1)
	case ')':
		l.emit(RPAREN, 1)
	case '{':
		l.emit(LBRACE, 1)
	case '}':
		l.emit(RBRACE, 1)
	case '[':
		l.emit(LBRACKET, 1)
	case ']':
		l.emit(RBRACKET, 1)
	default:
		if isLetter(c) {
			lit := l.readIdentifier()
			if kw, ok := keywords[lit]; ok {
				l.CurrTokenType = kw
			} else {
				l.CurrTokenType = IDENT
			}
			l.CurrLiteral = lit
		} else if isDigit(c) {
			l.readNumber()
		} else {
			l.illegal()
		}
	}
}

func (l *Lexer) illegal() {
	l.Errors.Add(l.line, l.col, "unexpected character %q", l.input[l.pos])
	l.emit(ILLEGAL, 1)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.advance(1)
		case c == '/' && l.peekByte(1) == '/':
			for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
				l.advance(1)
			}
		case c == '/' && l.peekByte(1) == '*':
			line, col := l.line, l.col
			l.advance(2)
			for l.input[l.pos] != 0 && !(l.input[l.pos] == '*' && l.peekByte(1) == '/') {
				l.advance(1)
			}
			if l.input[l.pos] == 0 {
				l.Errors.Add(line, col, "unterminated block comment")
				return
			}
			l.advance(2)
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.advance(1)
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() {
	start := l.pos
	line, col := l.line, l.col
	var val int64
	overflow := false
	for isDigit(l.input[l.pos]) {
		d := int64(l.input[l.pos] - '0')
		if val > (1<<31-1-d)/10 {
			overflow = true
		}
		if !overflow {
			val = val*10 + d
		}
		l.advance(1)
	}
	if overflow {
		l.Errors.Add(line, col, "integer literal %s does not fit in 32 bits", string(l.input[start:l.pos]))
	}
	l.CurrTokenType = INT
	l.CurrLiteral = string(l.input[start:l.pos])
	l.CurrIntValue = val
}

// PeekToken returns the next token type without advancing the lexer.
func (l *Lexer) PeekToken() TokenType {
	saved := *l
	savedErrors := len(l.Errors.errors)

	l.NextToken()
	next := l.CurrTokenType

	*l = saved
	l.Errors.errors = l.Errors.errors[:savedErrors]
	return next
}

// SkipToken advances past the current token, recording an error if it
// doesn't match the expected type. It reports whether the token matched.
func (l *Lexer) SkipToken(expectedType TokenType) bool {
	if l.CurrTokenType != expectedType {
		l.Errors.Add(l.TokenLine, l.TokenColumn, "expected %s but got %s", describeToken(expectedType), l.describeCurrent())
		return false
	}
	l.NextToken()
	return true
}

func (l *Lexer) describeCurrent() string {
	switch l.CurrTokenType {
	case EOF:
		return "end of input"
	case IDENT, INT:
		return describeToken(l.CurrTokenType) + " " + l.CurrLiteral
	default:
		return "'" + l.CurrLiteral + "'"
	}
}

func describeToken(typ TokenType) string {
	switch typ {
	case IDENT:
		return "identifier"
	case INT:
		return "integer literal"
	case EOF:
		return "end of input"
	case INT_TYPE:
		return "'int'"
	case VOID:
		return "'void'"
	case IF, ELSE, WHILE, RETURN, AND, OR:
		return "keyword " + string(typ)
	default:
		return "'" + string(typ) + "'"
	}
}
