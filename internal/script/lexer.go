package script

// tokenType classifies lexer tokens.
type tokenType uint8

const (
	tokEOF tokenType = iota
	// tokTerm is a statement terminator: newline or ';'.
	tokTerm
	// tokWord is a bare word, terminated by whitespace, ';', '}' or '#'.
	tokWord
	// tokString is a double-quoted string with escapes processed.
	tokString
	// tokBlockOpen is the '@{' block delimiter.
	tokBlockOpen
	// tokBlockClose is the '}' block delimiter.
	tokBlockClose
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of script"
	case tokTerm:
		return "end of statement"
	case tokWord:
		return "word"
	case tokString:
		return "string"
	case tokBlockOpen:
		return "'@{'"
	case tokBlockClose:
		return "'}'"
	default:
		return "token"
	}
}

// token is one lexed token with its source position.
type token struct {
	typ tokenType
	// text is the token content. For tokString, escapes are already
	// processed and the quotes stripped.
	text string
	pos  Position
	// quoted distinguishes tokString content for the parser.
	quoted bool
}

// lexer scans rc-script source into tokens, tracking line and column.
type lexer struct {
	source string
	input  []rune
	pos    int
	line   int
	col    int
}

func newLexer(source, input string) *lexer {
	return &lexer{
		source: source,
		input:  []rune(input),
		line:   1,
		col:    1,
	}
}

// position returns the current source position.
func (l *lexer) position() Position {
	return Position{Line: l.line, Col: l.col}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// next returns the next token. Comments and non-newline whitespace are
// skipped; newlines and ';' produce tokTerm.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.advance()
		case r == '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case r == '\n' || r == ';':
			pos := l.position()
			l.advance()
			return token{typ: tokTerm, pos: pos}, nil
		case r == '}':
			pos := l.position()
			l.advance()
			return token{typ: tokBlockClose, pos: pos}, nil
		case r == '@' && l.peekAt(1) == '{':
			pos := l.position()
			l.advance()
			l.advance()
			return token{typ: tokBlockOpen, pos: pos}, nil
		case r == '"':
			return l.lexString()
		default:
			return l.lexWord()
		}
	}
	return token{typ: tokEOF, pos: l.position()}, nil
}

// lexString scans a double-quoted string, processing escapes.
func (l *lexer) lexString() (token, error) {
	pos := l.position()
	l.advance() // opening quote

	var sb []rune
	for {
		if l.pos >= len(l.input) {
			return token{}, syntaxErrorf(l.source, pos, "unterminated string")
		}
		r := l.advance()
		switch r {
		case '"':
			return token{typ: tokString, text: string(sb), pos: pos, quoted: true}, nil
		case '\n':
			return token{}, syntaxErrorf(l.source, pos, "unterminated string")
		case '\\':
			if l.pos >= len(l.input) {
				return token{}, syntaxErrorf(l.source, pos, "unterminated string")
			}
			esc := l.advance()
			switch esc {
			case '"':
				sb = append(sb, '"')
			case '\\':
				sb = append(sb, '\\')
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			default:
				// Unknown escapes pass through verbatim so shell-bound
				// strings like "\d" survive.
				sb = append(sb, '\\', esc)
			}
		default:
			sb = append(sb, r)
		}
	}
}

// lexWord scans a bare word. '@{' never starts mid-word; a word may
// contain '@' for inline interpolation tokens like quit@arg(!).
func (l *lexer) lexWord() (token, error) {
	pos := l.position()
	var sb []rune
	for l.pos < len(l.input) {
		r := l.peek()
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == ';' || r == '}' || r == '#' || r == '"' {
			break
		}
		if r == '@' && l.peekAt(1) == '{' {
			break
		}
		sb = append(sb, l.advance())
	}
	return token{typ: tokWord, text: string(sb), pos: pos}, nil
}
