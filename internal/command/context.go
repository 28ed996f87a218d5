package command

// InvocationContext carries the live values interpolation tokens draw
// from. One is created per top-level dispatch and destroyed when the
// triggered action sequence finishes; asynchronous continuations get a
// child context that inherits the parent's resolved values.
type InvocationContext struct {
	// Args are the caller-supplied arguments, in order.
	Args []string

	// Bang is true when the caller was invoked with a trailing '!'.
	Bang bool

	// ReadlineInput is the submitted prompt text; valid when
	// HasReadlineInput is set.
	ReadlineInput    string
	HasReadlineInput bool

	// PickerEntry is the chosen picker entry; valid when
	// HasPickerEntry is set.
	PickerEntry    string
	HasPickerEntry bool
}

// NewInvocationContext creates a context for a top-level dispatch.
func NewInvocationContext(args []string, bang bool) *InvocationContext {
	return &InvocationContext{Args: args, Bang: bang}
}

// Child creates a continuation context inheriting this context's
// values. Mutating the child never affects the parent.
func (c *InvocationContext) Child() *InvocationContext {
	if c == nil {
		return &InvocationContext{}
	}
	child := *c
	child.Args = append([]string(nil), c.Args...)
	return &child
}

// WithReadlineInput returns a child context carrying a submitted
// readline value.
func (c *InvocationContext) WithReadlineInput(text string) *InvocationContext {
	child := c.Child()
	child.ReadlineInput = text
	child.HasReadlineInput = true
	return child
}

// WithPickerEntry returns a child context carrying a picker selection.
func (c *InvocationContext) WithPickerEntry(entry string) *InvocationContext {
	child := c.Child()
	child.PickerEntry = entry
	child.HasPickerEntry = true
	return child
}
