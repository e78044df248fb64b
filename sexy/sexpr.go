package sexy

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota + 1
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
	NodeArray
)

// Node represents any Sexy data structure
type Node struct {
	Type NodeType

	// NodeSymbol, NodeString, NodeInteger
	Text string

	// NodeList, NodeArray
	Items []*Node
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		return strconv.Quote(n.Text)
	case NodeEllipsis:
		return "..."
	case NodeList:
		return "(" + joinItems(n.Items) + ")"
	case NodeArray:
		return "[" + joinItems(n.Items) + "]"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func joinItems(items []*Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items []*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewArray(items []*Node) *Node {
	return &Node{Type: NodeArray, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type == NodeSymbol || n.Type == NodeString || n.Type == NodeInteger || n.Type == NodeEllipsis
}

// Match reports how actual differs from pattern, or nil if it matches. An
// ellipsis in a pattern matches any datum, and as the last item of a list or
// array it matches any number of remaining items.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
	}
	if pattern.IsAtom() {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}

	items := pattern.Items
	open := len(items) > 0 && items[len(items)-1].Type == NodeEllipsis
	if open {
		items = items[:len(items)-1]
		if len(actual.Items) < len(items) {
			return fmt.Errorf("at %s: expected at least %d items, got %d in %s", path, len(items), len(actual.Items), actual)
		}
	} else if len(actual.Items) != len(items) {
		return fmt.Errorf("at %s: expected %d items, got %d in %s", path, len(items), len(actual.Items), actual)
	}

	for i, item := range items {
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.ParseDatum()
	if len(p.lexer.errors) > 0 {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, fmt.Errorf("%s", p.lexer.errors[0])
	}
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}

	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) ParseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.nextToken()
		return NewInteger(tok.Value), nil
	case tokenEllipsis:
		p.nextToken()
		return NewEllipsis(), nil
	case tokenLParen:
		items, err := p.parseItems(tokenRParen)
		if err != nil {
			return nil, err
		}
		return NewList(items), nil
	case tokenLBracket:
		items, err := p.parseItems(tokenRBracket)
		if err != nil {
			return nil, err
		}
		return NewArray(items), nil
	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Type)
	}
}

// parseItems parses data up to the closing token.
func (p *parser) parseItems(closing tokenType) ([]*Node, error) {
	var items []*Node
	p.nextToken() // consume opening token

	for p.currentToken.Type != closing && p.currentToken.Type != tokenEOF {
		item, err := p.ParseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != closing {
		return nil, fmt.Errorf("expected %s but got %s", closing, p.currentToken.Type)
	}
	p.nextToken() // consume closing token
	return items, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

type lexer struct {
	input    string
	position int
	current  rune
	errors   []string
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.position >= len(l.input) {
		l.current = 0
	} else {
		l.current = rune(l.input[l.position])
	}
	l.position++
}

func (l *lexer) peekChar() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return rune(l.input[l.position])
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	start := l.position - 1
	for pred(l.current) {
		l.readChar()
	}
	return l.input[start : l.position-1]
}

func (l *lexer) readString() (string, error) {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"', '\\':
				sb.WriteRune(l.current)
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			sb.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return sb.String(), nil
}

func (l *lexer) nextToken() token {
	for {
		for unicode.IsSpace(l.current) {
			l.readChar()
		}

		pos := l.position - 1
		single := func(typ tokenType) token {
			value := string(l.current)
			l.readChar()
			return token{Type: typ, Value: value, Position: pos}
		}

		switch l.current {
		case 0:
			return token{Type: tokenEOF, Position: pos}
		case ';':
			// Comment to end of line
			l.readWhile(func(r rune) bool { return r != '\n' && r != 0 })
			continue
		case '(':
			return single(tokenLParen)
		case ')':
			return single(tokenRParen)
		case '[':
			return single(tokenLBracket)
		case ']':
			return single(tokenRBracket)
		case '"':
			str, err := l.readString()
			if err != nil {
				l.errors = append(l.errors, err.Error())
				return token{Type: tokenEOF, Position: pos}
			}
			return token{Type: tokenString, Value: str, Position: pos}
		case '.':
			if l.peekChar() == '.' {
				l.readChar()
				if l.peekChar() == '.' {
					l.readChar()
					l.readChar()
					return token{Type: tokenEllipsis, Value: "...", Position: pos}
				}
			}
			l.errors = append(l.errors, "unexpected character '.'")
			return token{Type: tokenEOF, Position: pos}
		default:
			switch {
			case unicode.IsLetter(l.current):
				return token{Type: tokenSymbol, Value: l.readWhile(isSymbolChar), Position: pos}
			case unicode.IsDigit(l.current), (l.current == '+' || l.current == '-') && unicode.IsDigit(l.peekChar()):
				l.readChar()
				digits := l.readWhile(unicode.IsDigit)
				return token{Type: tokenInteger, Value: l.input[pos:pos+1] + digits, Position: pos}
			default:
				l.errors = append(l.errors, fmt.Sprintf("unexpected character '%c'", l.current))
				return token{Type: tokenEOF, Position: pos}
			}
		}
	}
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
