package loader

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
)

// documentNames maps the top-level keys of YAML, JSON and TOML sources.
var documentNames = map[string]usersrc.Binding{
	"envVars":  usersrc.BindingEnv,
	"aliases":  usersrc.BindingAlias,
	"bashCode": usersrc.BindingBashCode,
	"cmdCode":  usersrc.BindingCmdCode,
}

// maxAliasDepth bounds how many aliases are followed to reach one node.
const maxAliasDepth = 32

func parseYAML(path string, data []byte) (*usersrc.Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &usersrc.ParseError{Path: path, Err: syntaxError(err)}
	}

	b := newBuilder(path, documentNames, nil)

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return b.build(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 || isYAMLNull(root) {
		return b.build(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, b.failf(root.Line, errors.Wrap(usersrc.ErrShape, "top level must be a mapping"))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if _, ok := b.lookup(key.Value); !ok || key.Kind != yaml.ScalarNode {
			continue
		}
		v, err := yamlValue(val, false)
		if err != nil {
			return nil, b.fail(key.Value, val.Line, err)
		}
		if err := b.assign(key.Value, v); err != nil {
			return nil, err
		}
	}

	return b.build(), nil
}

// yamlValue converts a binding value. Arrays are only allowed at the top of
// a binding, so a nested sequence or mapping fails before any of it is
// expanded. This keeps aliased lists from multiplying into large trees.
func yamlValue(n *yaml.Node, nested bool) (value, error) {
	line := n.Line
	for hops := 0; n.Kind == yaml.AliasNode; hops++ {
		if n.Alias == nil {
			return value{}, errors.Wrap(usersrc.ErrSyntax, "unresolved alias")
		}
		if hops == maxAliasDepth {
			return value{}, errors.Wrap(usersrc.ErrShape, "alias nesting too deep")
		}
		n = n.Alias
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if isYAMLNull(n) {
			return null(line), nil
		}
		return scalar(n.Value, line), nil

	case yaml.SequenceNode, yaml.MappingNode:
		if nested {
			return value{}, errors.Wrap(usersrc.ErrShape, "nested arrays are not allowed")
		}
	default:
		return value{}, errors.Newf("unexpected YAML node kind %d", n.Kind)
	}

	v := value{kind: kindArray, line: line}
	if n.Kind == yaml.SequenceNode {
		for _, c := range n.Content {
			cv, err := yamlValue(c, true)
			if err != nil {
				return value{}, err
			}
			v.items = append(v.items, item{val: cv, line: c.Line})
		}
		return v, nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, c := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return value{}, errors.Wrap(usersrc.ErrShape, "mapping keys must be scalars")
		}
		cv, err := yamlValue(c, true)
		if err != nil {
			return value{}, err
		}
		v.items = append(v.items, item{key: k.Value, keyed: true, val: cv, line: k.Line})
	}
	return v, nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
