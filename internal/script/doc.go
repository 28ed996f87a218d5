// Package script parses rc scripts into immutable statement lists.
//
// The dialect is line oriented. A statement is one of:
//
//	map <mode> <from-keys> <to>
//	command <name> @{ body }
//	eval on <platform...> @{ body }
//	<invocation>
//
// where <to> is either a key string (literal key replacement) or an
// @{ ... } block, and an invocation is "name[!] arg...". Arguments are
// bare words or double-quoted strings, and both may embed interpolation
// tokens such as @arg(0), @arg(*) or @readline-input(). Comments start
// with '#' and run to end of line. Blocks delimited by @{ and } nest;
// unbalanced delimiters fail the whole script.
//
// Parsing performs no evaluation. Platform filtering of "eval on"
// blocks happens afterwards via Filter.
package script
