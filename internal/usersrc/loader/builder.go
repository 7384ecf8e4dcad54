package loader

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
)

// builder accumulates bindings from any source format and enforces the
// shape, duplicate-key and duplicate-definition rules in one place.
type builder struct {
	path   string
	names  map[string]usersrc.Binding
	label  func(string) string
	states map[usersrc.Binding]*bindingState
}

type bindingState struct {
	keys    map[string]bool
	entries usersrc.Mapping
	lines   usersrc.Sequence
}

func newBuilder(path string, names map[string]usersrc.Binding, label func(string) string) *builder {
	if label == nil {
		label = func(s string) string { return s }
	}
	return &builder{
		path:   path,
		names:  names,
		label:  label,
		states: make(map[usersrc.Binding]*bindingState),
	}
}

// lookup returns the binding a source-level name refers to.
func (b *builder) lookup(name string) (usersrc.Binding, bool) {
	binding, ok := b.names[name]
	return binding, ok
}

func (b *builder) state(binding usersrc.Binding) *bindingState {
	st, ok := b.states[binding]
	if !ok {
		st = &bindingState{keys: make(map[string]bool)}
		b.states[binding] = st
	}
	return st
}

// assign defines a binding from a whole value. A null value leaves the
// binding absent. A binding that already has state, from an earlier
// assignment or incremental add, is defined twice.
func (b *builder) assign(name string, v value) error {
	binding, ok := b.lookup(name)
	if !ok {
		return nil
	}
	if v.kind == kindNull {
		return nil
	}
	if v.kind != kindArray {
		return b.fail(name, v.line, errors.Wrapf(usersrc.ErrShape, "want %s, got %s", shapeName(binding), v.kind))
	}
	if _, exists := b.states[binding]; exists {
		return b.fail(name, v.line, usersrc.ErrDuplicateBinding)
	}
	b.state(binding)
	for _, it := range v.items {
		if err := b.add(binding, name, it); err != nil {
			return err
		}
	}
	return nil
}

// declare marks a binding present without entries, e.g. an empty TOML table
// header. Declaring after an assignment is a duplicate definition.
func (b *builder) declare(name string, line int) error {
	binding, ok := b.lookup(name)
	if !ok {
		return nil
	}
	if !binding.IsMapping() {
		return b.fail(name, line, errors.Wrapf(usersrc.ErrShape, "want %s, got table", shapeName(binding)))
	}
	if _, exists := b.states[binding]; exists {
		return b.fail(name, line, usersrc.ErrDuplicateBinding)
	}
	b.state(binding)
	return nil
}

// add appends one item to a binding, defining it if needed. This backs the
// incremental forms: PHP's $x[] = ... and $x['k'] = ..., TOML dotted keys.
func (b *builder) add(binding usersrc.Binding, name string, it item) error {
	st := b.state(binding)

	if binding.IsMapping() != it.keyed {
		what := "unkeyed entry"
		if it.keyed {
			what = "keyed entry " + strconv.Quote(it.key)
		}
		return b.fail(name, it.line, errors.Wrapf(usersrc.ErrShape, "want %s, got %s", shapeName(binding), what))
	}

	var text string
	switch it.val.kind {
	case kindScalar:
		text = it.val.text
	case kindNull:
		text = ""
	default:
		return b.fail(name, it.line, errors.Wrap(usersrc.ErrShape, "nested arrays are not allowed"))
	}

	if !it.keyed {
		st.lines = append(st.lines, text)
		return nil
	}
	if st.keys[it.key] {
		return b.fail(name, it.line, errors.Wrap(usersrc.ErrDuplicateKey, strconv.Quote(it.key)))
	}
	st.keys[it.key] = true
	st.entries = append(st.entries, usersrc.Entry{Name: it.key, Value: text})
	return nil
}

// addNamed is add for callers holding a source-level name.
func (b *builder) addNamed(name string, it item) error {
	binding, ok := b.lookup(name)
	if !ok {
		return nil
	}
	return b.add(binding, name, it)
}

func (b *builder) build() *usersrc.Source {
	src := &usersrc.Source{}
	for binding, st := range b.states {
		if binding.IsMapping() {
			src.SetMapping(binding, st.entries)
		} else {
			src.SetSequence(binding, st.lines)
		}
	}
	return src
}

func (b *builder) fail(name string, line int, err error) error {
	return &usersrc.ParseError{Path: b.path, Line: line, Binding: b.label(name), Err: err}
}

// failf reports a problem not tied to a binding.
func (b *builder) failf(line int, err error) error {
	return &usersrc.ParseError{Path: b.path, Line: line, Err: err}
}

// syntaxError tags a decoder error as usersrc.ErrSyntax. The decoder error
// stays attached as a secondary cause for verbose reports.
func syntaxError(err error) error {
	return errors.WithSecondaryError(errors.Wrapf(usersrc.ErrSyntax, "%v", err), err)
}

func shapeName(binding usersrc.Binding) string {
	if binding.IsMapping() {
		return "name => value mapping"
	}
	return "list of code lines"
}
