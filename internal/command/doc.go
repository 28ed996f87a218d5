// Package command provides the two-tier command registry and the
// interpolation resolver.
//
// Dispatch is two-tier: builtins form a closed enumeration, user
// commands an open string-keyed table. A user command with a builtin's
// name shadows it entirely; removing the user command restores the
// builtin. Command bodies reference caller state through interpolation
// tokens resolved against an InvocationContext at execution time.
package command
