package command

import (
	"fmt"
	"strings"

	"github.com/ternedit/tern/internal/script"
)

// ResolveToken resolves one interpolation token against ctx.
//
// Resolution rules:
//   - @arg(N) fails with ErrUnboundToken when N is out of range.
//   - @arg(*) never fails: it joins all caller arguments with single
//     spaces and yields "" when there are none.
//   - @arg(!) yields "!" when the caller carried a bang, else "".
//   - @readline-input() and @picker-entry() fail unless the context is
//     a continuation of the corresponding prompt builtin.
func ResolveToken(tok script.Token, ctx *InvocationContext) (string, error) {
	if ctx == nil {
		ctx = &InvocationContext{}
	}

	switch tok.Kind {
	case script.TokenArgRef:
		if tok.Index >= len(ctx.Args) {
			return "", fmt.Errorf("%w: @arg(%d) with %d arguments", ErrUnboundToken, tok.Index, len(ctx.Args))
		}
		return ctx.Args[tok.Index], nil

	case script.TokenArgAll:
		return strings.Join(ctx.Args, " "), nil

	case script.TokenArgBang:
		if ctx.Bang {
			return "!", nil
		}
		return "", nil

	case script.TokenReadlineInput:
		if !ctx.HasReadlineInput {
			return "", fmt.Errorf("%w: @readline-input() outside a readline continuation", ErrUnboundToken)
		}
		return ctx.ReadlineInput, nil

	case script.TokenPickerEntry:
		if !ctx.HasPickerEntry {
			return "", fmt.Errorf("%w: @picker-entry() outside a pick continuation", ErrUnboundToken)
		}
		return ctx.PickerEntry, nil

	default:
		return "", fmt.Errorf("%w: %v", ErrUnboundToken, tok.Kind)
	}
}

// ResolveText renders an interpolated text against ctx. Submitted
// prompt text passes through verbatim, unescaped.
func ResolveText(text script.Text, ctx *InvocationContext) (string, error) {
	var sb strings.Builder
	for _, seg := range text {
		if !seg.IsToken {
			sb.WriteString(seg.Literal)
			continue
		}
		value, err := ResolveToken(seg.Token, ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(value)
	}
	return sb.String(), nil
}

// ResolveArgs renders every argument of an invocation.
func ResolveArgs(args []script.Text, ctx *InvocationContext) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		value, err := ResolveText(arg, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

// ResolveName renders an invocation's name, deriving the trailing bang.
// Literal names short-circuit; interpolated names such as quit@arg(!)
// are rendered first and then split.
func ResolveName(inv script.Invocation, ctx *InvocationContext) (name string, bang bool, err error) {
	if inv.HasLiteralName() {
		return inv.Name, inv.Bang, nil
	}
	rendered, err := ResolveText(inv.NameText, ctx)
	if err != nil {
		return "", false, err
	}
	if strings.HasSuffix(rendered, "!") {
		return strings.TrimSuffix(rendered, "!"), true, nil
	}
	return rendered, false, nil
}
