package loader

// kind classifies a parsed source value independent of its format.
type kind int

const (
	kindNull kind = iota
	kindScalar
	kindArray
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindScalar:
		return "scalar"
	default:
		return "array"
	}
}

// value is the format-neutral form of a parsed literal. Arrays hold items
// that are either all keyed (a mapping), all unkeyed (a list), or mixed.
type value struct {
	kind  kind
	text  string
	items []item
	line  int
}

type item struct {
	key   string
	keyed bool
	val   value
	line  int
}

func scalar(text string, line int) value {
	return value{kind: kindScalar, text: text, line: line}
}

func null(line int) value {
	return value{kind: kindNull, line: line}
}
