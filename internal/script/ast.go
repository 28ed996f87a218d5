package script

import (
	"strings"

	"github.com/ternedit/tern/internal/input/key"
)

// Position locates a construct in its source, 1-based.
type Position struct {
	Line int
	Col  int
}

// Script is an ordered sequence of parsed top-level statements. It is
// immutable once parsed.
type Script struct {
	// Source names where the script came from, usually a file path.
	Source string

	// Statements are the top-level statements in source order.
	Statements []Statement
}

// Statement is one parsed top-level or block-level statement.
type Statement interface {
	// Pos returns the statement's source position.
	Pos() Position

	stmt()
}

// MapStatement binds a chord sequence in one mode. The target is either
// a literal key sequence to replay (ToKeys) or a block of invocations
// (ToBlock); exactly one is set.
type MapStatement struct {
	Position Position

	// Mode is the rc-script mode name, validated at load time.
	Mode string

	// From is the triggering chord sequence.
	From key.Sequence

	// ToKeys is the replacement key sequence for key-remap bindings.
	ToKeys key.Sequence

	// ToBlock is the action block for command bindings.
	ToBlock []Invocation
}

// CommandStatement defines or redefines a named command.
type CommandStatement struct {
	Position Position

	// Name is the command name, without a bang.
	Name string

	// Body is the command's action sequence.
	Body []Invocation
}

// EvalOnStatement guards nested statements behind a platform list.
type EvalOnStatement struct {
	Position Position

	// Platforms are the platform names the block applies to.
	Platforms []string

	// Body holds the guarded statements, including nested definitions.
	Body []Statement
}

// InvocationStatement is a bare invocation executed at load time.
type InvocationStatement struct {
	Invocation
}

// Pos implements Statement.
func (s *MapStatement) Pos() Position     { return s.Position }
func (s *CommandStatement) Pos() Position { return s.Position }
func (s *EvalOnStatement) Pos() Position  { return s.Position }

func (s *MapStatement) stmt()        {}
func (s *CommandStatement) stmt()    {}
func (s *EvalOnStatement) stmt()     {}
func (s *InvocationStatement) stmt() {}

// Invocation is one command call: a name, an optional bang, arguments
// that may contain interpolation tokens, and an optional trailing
// continuation block (for the readline and pick builtins).
type Invocation struct {
	Position Position

	// NameText is the invoked name as written. It usually holds a single
	// literal segment, but may embed tokens: "quit@arg(!)" forwards the
	// caller's bang and is only resolvable at execution time.
	NameText Text

	// Name and Bang are the pre-resolved forms when NameText is literal.
	// When NameText carries tokens, Name is empty and the executor
	// derives both from the rendered text.
	Name string
	Bang bool

	// Args are the call arguments in order.
	Args []Text

	// Block is the continuation block, when one follows the arguments.
	Block []Invocation
}

// HasLiteralName reports whether Name and Bang are usable directly.
func (inv Invocation) HasLiteralName() bool {
	return inv.Name != ""
}

// Pos returns the invocation's source position.
func (inv Invocation) Pos() Position { return inv.Position }

// TokenKind tags an interpolation token variant.
type TokenKind uint8

const (
	// TokenArgRef is @arg(N): the Nth caller argument, 0-based.
	TokenArgRef TokenKind = iota
	// TokenArgAll is @arg(*): all remaining caller arguments joined.
	TokenArgAll
	// TokenArgBang is @arg(!): "!" when the caller was invoked with a
	// bang, empty otherwise.
	TokenArgBang
	// TokenReadlineInput is @readline-input(): the submitted prompt text.
	TokenReadlineInput
	// TokenPickerEntry is @picker-entry(): the chosen picker entry.
	TokenPickerEntry
)

// String returns the token's script spelling.
func (k TokenKind) String() string {
	switch k {
	case TokenArgRef:
		return "@arg(n)"
	case TokenArgAll:
		return "@arg(*)"
	case TokenArgBang:
		return "@arg(!)"
	case TokenReadlineInput:
		return "@readline-input()"
	case TokenPickerEntry:
		return "@picker-entry()"
	default:
		return "@?"
	}
}

// Token is one interpolation placeholder, resolved lazily at execution
// time against the invocation context.
type Token struct {
	Kind TokenKind

	// Index is the argument index for TokenArgRef.
	Index int
}

// Segment is one piece of an interpolated string: literal text or a
// token. Exactly one field is meaningful, selected by IsToken.
type Segment struct {
	IsToken bool
	Literal string
	Token   Token
}

// Text is a string literal with embedded interpolation tokens.
type Text []Segment

// IsLiteral reports whether the text contains no tokens.
func (t Text) IsLiteral() bool {
	for _, seg := range t {
		if seg.IsToken {
			return false
		}
	}
	return true
}

// LiteralString returns the text verbatim; only valid when IsLiteral.
func (t Text) LiteralString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Literal)
	}
	return sb.String()
}

// LiteralText wraps a plain string as a token-free Text.
func LiteralText(s string) Text {
	return Text{{Literal: s}}
}
