package script

import (
	"strings"

	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/mode"
)

// Parse parses rc-script source into a Script. source names the input
// for error messages, usually a file path. Any error is a *SyntaxError.
func Parse(source, input string) (*Script, error) {
	p := &parser{source: source, lx: newLexer(source, input)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	stmts, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}

	return &Script{Source: source, Statements: stmts}, nil
}

type parser struct {
	source string
	lx     *lexer
	tok    token
}

func (p *parser) advance() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return syntaxErrorf(p.source, pos, format, args...)
}

// parseStatements parses until end of script, or until the closing '}'
// of an eval-on block when inBlock is set.
func (p *parser) parseStatements(inBlock bool) ([]Statement, error) {
	var stmts []Statement
	for {
		switch p.tok.typ {
		case tokTerm:
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokEOF:
			if inBlock {
				return nil, p.errorf(p.tok.pos, "unexpected end of script inside '@{' block")
			}
			return stmts, nil

		case tokBlockClose:
			if !inBlock {
				return nil, p.errorf(p.tok.pos, "unmatched '}'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return stmts, nil

		case tokBlockOpen:
			return nil, p.errorf(p.tok.pos, "unexpected '@{'")

		case tokString:
			return nil, p.errorf(p.tok.pos, "expected statement, found string")

		case tokWord:
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
	}
}

// parseStatement parses one statement starting at the current word.
func (p *parser) parseStatement() (Statement, error) {
	switch p.tok.text {
	case "map":
		return p.parseMap()
	case "command":
		return p.parseCommand()
	case "eval":
		return p.parseEvalOn()
	default:
		inv, err := p.parseInvocation()
		if err != nil {
			return nil, err
		}
		return &InvocationStatement{Invocation: inv}, nil
	}
}

// parseMap parses "map <mode> <from-keys> <to>".
func (p *parser) parseMap() (Statement, error) {
	stmt := &MapStatement{Position: p.tok.pos}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.typ != tokWord {
		return nil, p.errorf(p.tok.pos, "map: expected mode name, found %s", p.tok.typ)
	}
	if _, ok := mode.FromName(p.tok.text); !ok {
		return nil, p.errorf(p.tok.pos, "map: unknown mode %q", p.tok.text)
	}
	stmt.Mode = p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	from, err := p.parseKeys("map")
	if err != nil {
		return nil, err
	}
	if from.IsEmpty() {
		return nil, p.errorf(stmt.Position, "map: empty key sequence")
	}
	stmt.From = from

	switch p.tok.typ {
	case tokBlockOpen:
		block, err := p.parseInvocationBlock()
		if err != nil {
			return nil, err
		}
		stmt.ToBlock = block
	case tokWord, tokString:
		to, err := p.parseKeys("map")
		if err != nil {
			return nil, err
		}
		stmt.ToKeys = to
	default:
		return nil, p.errorf(p.tok.pos, "map: expected target keys or '@{' block, found %s", p.tok.typ)
	}

	return stmt, p.expectEnd("map")
}

// parseKeys parses the current word or string as a chord sequence.
func (p *parser) parseKeys(stmtName string) (key.Sequence, error) {
	if p.tok.typ != tokWord && p.tok.typ != tokString {
		return nil, p.errorf(p.tok.pos, "%s: expected key sequence, found %s", stmtName, p.tok.typ)
	}
	seq, err := key.ParseSequence(p.tok.text)
	if err != nil {
		return nil, p.errorf(p.tok.pos, "%s: %v", stmtName, err)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return seq, nil
}

// parseCommand parses "command <name> @{ body }".
func (p *parser) parseCommand() (Statement, error) {
	stmt := &CommandStatement{Position: p.tok.pos}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.typ != tokWord {
		return nil, p.errorf(p.tok.pos, "command: expected name, found %s", p.tok.typ)
	}
	if !isCommandName(p.tok.text) {
		return nil, p.errorf(p.tok.pos, "command: invalid name %q", p.tok.text)
	}
	stmt.Name = p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.typ != tokBlockOpen {
		return nil, p.errorf(p.tok.pos, "command %s: expected '@{' block, found %s", stmt.Name, p.tok.typ)
	}
	body, err := p.parseInvocationBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	return stmt, p.expectEnd("command")
}

// parseEvalOn parses "eval on <platform...> @{ statements }". The body
// may hold any statements, including nested eval-on blocks.
func (p *parser) parseEvalOn() (Statement, error) {
	stmt := &EvalOnStatement{Position: p.tok.pos}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.typ != tokWord || p.tok.text != "on" {
		return nil, p.errorf(p.tok.pos, "eval: expected 'on'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.tok.typ == tokWord {
		stmt.Platforms = append(stmt.Platforms, strings.ToLower(p.tok.text))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if len(stmt.Platforms) == 0 {
		return nil, p.errorf(stmt.Position, "eval on: expected at least one platform")
	}

	if p.tok.typ != tokBlockOpen {
		return nil, p.errorf(p.tok.pos, "eval on: expected '@{' block, found %s", p.tok.typ)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	body, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	return stmt, nil
}

// parseInvocationBlock parses "@{ invocation... }" starting at the
// '@{' token. Invocations are separated by newlines or ';'.
func (p *parser) parseInvocationBlock() ([]Invocation, error) {
	open := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	invs := make([]Invocation, 0, 2)
	for {
		switch p.tok.typ {
		case tokTerm:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokBlockClose:
			return invs, p.advance()
		case tokEOF:
			return nil, p.errorf(open, "unbalanced '@{' block")
		case tokWord:
			inv, err := p.parseInvocation()
			if err != nil {
				return nil, err
			}
			invs = append(invs, inv)
		default:
			return nil, p.errorf(p.tok.pos, "expected invocation, found %s", p.tok.typ)
		}
	}
}

// parseInvocation parses "name[!] arg... [@{ block }]" starting at the
// name word. The continuation block, when present, must come last.
func (p *parser) parseInvocation() (Invocation, error) {
	inv := Invocation{Position: p.tok.pos}

	nameText, err := parseText(p.source, p.tok.text, p.tok.pos)
	if err != nil {
		return Invocation{}, err
	}
	inv.NameText = nameText
	if nameText.IsLiteral() {
		name := nameText.LiteralString()
		if strings.HasSuffix(name, "!") {
			inv.Bang = true
			name = strings.TrimSuffix(name, "!")
		}
		if !isCommandName(name) {
			return Invocation{}, p.errorf(p.tok.pos, "invalid command name %q", p.tok.text)
		}
		inv.Name = name
	}
	if err := p.advance(); err != nil {
		return Invocation{}, err
	}

	for {
		switch p.tok.typ {
		case tokWord, tokString:
			arg, err := parseText(p.source, p.tok.text, p.tok.pos)
			if err != nil {
				return Invocation{}, err
			}
			inv.Args = append(inv.Args, arg)
			if err := p.advance(); err != nil {
				return Invocation{}, err
			}

		case tokBlockOpen:
			block, err := p.parseInvocationBlock()
			if err != nil {
				return Invocation{}, err
			}
			inv.Block = block
			return inv, nil

		default:
			return inv, nil
		}
	}
}

// expectEnd requires the current token to terminate a statement.
func (p *parser) expectEnd(stmtName string) error {
	switch p.tok.typ {
	case tokTerm, tokEOF, tokBlockClose:
		return nil
	default:
		return p.errorf(p.tok.pos, "%s: unexpected %s after statement", stmtName, p.tok.typ)
	}
}

// isCommandName reports whether s is a valid command name: letters,
// digits, '-' and '_', starting with a letter or '-'.
func isCommandName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
