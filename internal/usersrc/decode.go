package usersrc

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
)

// ErrMalformedDocument reports XML that is well-formed but is not a userSrc document.
var ErrMalformedDocument = errors.New("malformed userSrc document")

// Decode reads a document written by an Emitter and returns its bindings in
// document order. Bindings with no elements are left nil.
func Decode(r io.Reader) (*Source, error) {
	d := xml.NewDecoder(r)
	src := &Source{}

	root, closed := false, false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding userSrc XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if closed {
				return nil, errors.Wrapf(ErrMalformedDocument, "element <%s> after </%s>", t.Name.Local, RootElement)
			}
			if !root {
				if t.Name.Local != RootElement {
					return nil, errors.Wrapf(ErrMalformedDocument, "root element is <%s>", t.Name.Local)
				}
				root = true
				continue
			}
			if err := decodeChild(d, t, src); err != nil {
				return nil, err
			}
		case xml.EndElement:
			// children are consumed whole by decodeChild, so this is the root
			closed = true
		}
	}

	if !root {
		return nil, errors.Wrap(ErrMalformedDocument, "missing <userSrc> element")
	}
	return src, nil
}

func decodeChild(d *xml.Decoder, start xml.StartElement, src *Source) error {
	var el struct {
		Name  string `xml:"name,attr"`
		Shell string `xml:"shell,attr"`
		Text  string `xml:",chardata"`
	}
	if err := d.DecodeElement(&el, &start); err != nil {
		return errors.Wrapf(err, "decoding <%s>", start.Name.Local)
	}

	switch start.Name.Local {
	case "env", "alias":
		b := BindingEnv
		if start.Name.Local == "alias" {
			b = BindingAlias
		}
		if prev, dup := src.Mapping(b).Lookup(el.Name); dup {
			return errors.Wrapf(ErrDuplicateKey, "<%s name=%q> already holds %q", start.Name.Local, el.Name, prev)
		}
		src.SetMapping(b, append(src.Mapping(b), Entry{Name: el.Name, Value: el.Text}))
	case "code":
		switch el.Shell {
		case "bash":
			src.BashCode = append(src.BashCode, el.Text)
		case "cmd":
			src.CmdCode = append(src.CmdCode, el.Text)
		default:
			return errors.Wrapf(ErrMalformedDocument, "unknown shell %q", el.Shell)
		}
	default:
		return errors.Wrapf(ErrMalformedDocument, "unexpected element <%s>", start.Name.Local)
	}
	return nil
}
