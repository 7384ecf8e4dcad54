package loader

import (
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
)

// parseTOML walks expressions in order with the low-level parser, since
// decoded maps lose key order, then runs the regular decoder, which reports
// error positions and rejects redefinitions the walk cannot see.
func parseTOML(path string, data []byte) (*usersrc.Source, error) {
	w := &tomlWalker{b: newBuilder(path, documentNames, nil)}
	w.p.Reset(data)
	for w.p.NextExpression() {
		if err := w.expression(w.p.Expression()); err != nil {
			return nil, err
		}
	}

	var check map[string]any
	if err := toml.Unmarshal(data, &check); err != nil {
		perr := &usersrc.ParseError{Path: path, Err: syntaxError(err)}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			perr.Line, _ = de.Position()
		}
		return nil, perr
	}
	if err := w.p.Error(); err != nil {
		return nil, w.b.failf(0, syntaxError(err))
	}
	return w.b.build(), nil
}

type tomlWalker struct {
	p     unstable.Parser
	b     *builder
	table []string
}

func (w *tomlWalker) expression(expr *unstable.Node) error {
	switch expr.Kind {
	case unstable.Table:
		path, line := w.key(expr.Key())
		w.table = path
		if len(path) == 1 {
			return w.b.declare(path[0], line)
		}
		if _, ok := w.b.lookup(path[0]); ok {
			return w.b.fail(path[0], line, errors.Wrap(usersrc.ErrShape, "nested tables are not allowed"))
		}

	case unstable.ArrayTable:
		path, line := w.key(expr.Key())
		w.table = path
		if _, ok := w.b.lookup(path[0]); ok {
			return w.b.fail(path[0], line, errors.Wrap(usersrc.ErrShape, "array tables are not allowed"))
		}

	case unstable.KeyValue:
		path, line := w.key(expr.Key())
		full := make([]string, 0, len(w.table)+len(path))
		full = append(full, w.table...)
		full = append(full, path...)
		return w.keyValue(full, line, expr.Value())
	}
	return nil
}

func (w *tomlWalker) keyValue(path []string, line int, node *unstable.Node) error {
	name := path[0]
	if _, ok := w.b.lookup(name); !ok {
		return nil
	}

	v, err := w.value(node, line)
	if err != nil {
		return w.b.fail(name, line, err)
	}

	switch len(path) {
	case 1:
		return w.b.assign(name, v)
	case 2:
		return w.b.addNamed(name, item{key: path[1], keyed: true, val: v, line: line})
	}
	return w.b.fail(name, line, errors.Wrap(usersrc.ErrShape, "nested tables are not allowed"))
}

// key flattens a dotted key and reports the line of its first part.
func (w *tomlWalker) key(it unstable.Iterator) ([]string, int) {
	var parts []string
	line := 0
	for it.Next() {
		n := it.Node()
		if line == 0 {
			line = w.p.Shape(n.Raw).Start.Line
		}
		parts = append(parts, string(n.Data))
	}
	return parts, line
}

func (w *tomlWalker) value(n *unstable.Node, line int) (value, error) {
	switch n.Kind {
	case unstable.Array:
		v := value{kind: kindArray, line: line}
		children := n.Children()
		for children.Next() {
			c, err := w.value(children.Node(), line)
			if err != nil {
				return value{}, err
			}
			v.items = append(v.items, item{val: c, line: line})
		}
		return v, nil

	case unstable.InlineTable:
		v := value{kind: kindArray, line: line}
		children := n.Children()
		for children.Next() {
			kv := children.Node()
			parts, kline := w.key(kv.Key())
			if len(parts) != 1 {
				return value{}, errors.Wrap(usersrc.ErrShape, "dotted keys inside inline tables are not allowed")
			}
			c, err := w.value(kv.Value(), kline)
			if err != nil {
				return value{}, err
			}
			v.items = append(v.items, item{key: parts[0], keyed: true, val: c, line: kline})
		}
		return v, nil

	case unstable.String, unstable.Bool, unstable.Integer, unstable.Float,
		unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return scalar(string(n.Data), line), nil
	}

	return value{}, errors.Newf("unexpected TOML node kind %s", n.Kind)
}
