package usersrc

// Binding identifies one of the four recognized userSrc settings.
type Binding int

const (
	BindingEnv Binding = iota
	BindingAlias
	BindingBashCode
	BindingCmdCode
)

// Bindings lists every binding in emission order.
var Bindings = []Binding{BindingEnv, BindingAlias, BindingBashCode, BindingCmdCode}

var bindingNames = [...]string{
	BindingEnv:      "env",
	BindingAlias:    "alias",
	BindingBashCode: "bashCode",
	BindingCmdCode:  "cmdCode",
}

func (b Binding) String() string {
	if b < 0 || int(b) >= len(bindingNames) {
		return "unknown"
	}
	return bindingNames[b]
}

// IsMapping reports whether the binding holds name/value entries rather
// than code lines.
func (b Binding) IsMapping() bool {
	return b == BindingEnv || b == BindingAlias
}

// Shell returns the shell attribute for code bindings, or "".
func (b Binding) Shell() string {
	switch b {
	case BindingBashCode:
		return "bash"
	case BindingCmdCode:
		return "cmd"
	default:
		return ""
	}
}

// Entry is one name/value pair of a mapping binding.
type Entry struct {
	Name  string
	Value string
}

// Mapping is an ordered list of uniquely named entries.
// A nil Mapping means the binding was not defined.
type Mapping []Entry

// Lookup returns the value stored under name.
func (m Mapping) Lookup(name string) (string, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Sequence is an ordered list of code lines.
// A nil Sequence means the binding was not defined.
type Sequence []string

// Source holds the bindings read from one userSrc file.
type Source struct {
	Env      Mapping
	Aliases  Mapping
	BashCode Sequence
	CmdCode  Sequence
}

// Mapping returns the mapping stored for b, or nil for code bindings.
func (s *Source) Mapping(b Binding) Mapping {
	switch b {
	case BindingEnv:
		return s.Env
	case BindingAlias:
		return s.Aliases
	default:
		return nil
	}
}

// Sequence returns the sequence stored for b, or nil for mapping bindings.
func (s *Source) Sequence(b Binding) Sequence {
	switch b {
	case BindingBashCode:
		return s.BashCode
	case BindingCmdCode:
		return s.CmdCode
	default:
		return nil
	}
}

// Defined reports whether b was present in the source, even if empty.
func (s *Source) Defined(b Binding) bool {
	if b.IsMapping() {
		return s.Mapping(b) != nil
	}
	return s.Sequence(b) != nil
}

// Len returns the number of child elements b contributes to the document.
func (s *Source) Len(b Binding) int {
	if b.IsMapping() {
		return len(s.Mapping(b))
	}
	return len(s.Sequence(b))
}

// SetMapping stores m for a mapping binding. Empty non-nil mappings stay
// non-nil so Defined still reports the binding.
func (s *Source) SetMapping(b Binding, m Mapping) {
	if m == nil {
		m = Mapping{}
	}
	switch b {
	case BindingEnv:
		s.Env = m
	case BindingAlias:
		s.Aliases = m
	}
}

// SetSequence stores q for a code binding.
func (s *Source) SetSequence(b Binding, q Sequence) {
	if q == nil {
		q = Sequence{}
	}
	switch b {
	case BindingBashCode:
		s.BashCode = q
	case BindingCmdCode:
		s.CmdCode = q
	}
}
