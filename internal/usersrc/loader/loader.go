package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/usersrc2xml/internal/logging"
	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
	"github.com/thoreinstein/usersrc2xml/pkg/fileutil"
)

// Format names a source file syntax.
type Format string

// Supported source formats.
const (
	FormatPHP  Format = "php"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatPHP, FormatYAML, FormatTOML}
}

// DetectFormat picks a format from the file extension. JSON is read by the
// YAML parser. Unknown extensions fall back to PHP, the format of the
// conventional userSrc.php.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatPHP
	}
}

type options struct {
	format Format
}

// Option configures Load.
type Option func(*options)

// WithFormat forces a source format instead of detecting it from the
// extension. An empty format keeps detection.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// Load reads the userSrc definition at path.
//
// A file that cannot be read yields a *usersrc.LoadError; content that is
// not a valid definition yields a *usersrc.ParseError.
func Load(ctx context.Context, path string, opts ...Option) (*usersrc.Source, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == "" {
		o.format = DetectFormat(path)
	}

	if err := ctx.Err(); err != nil {
		return nil, &usersrc.LoadError{Path: path, Err: err}
	}

	logger := logging.FromContext(ctx)
	logger.Debug("loading userSrc", "path", path, "format", string(o.format))

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &usersrc.LoadError{Path: path, Err: err}
	}

	src, err := Parse(path, data, o.format)
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded userSrc",
		"path", path,
		"env", src.Len(usersrc.BindingEnv),
		"alias", src.Len(usersrc.BindingAlias),
		"bashCode", src.Len(usersrc.BindingBashCode),
		"cmdCode", src.Len(usersrc.BindingCmdCode),
	)
	for _, b := range usersrc.Bindings {
		logger.Log(ctx, logging.LevelTrace, "binding",
			"name", b.String(),
			"defined", src.Defined(b),
			"entries", src.Len(b),
		)
	}
	return src, nil
}

// Parse decodes data in the given format. path is used only in errors.
func Parse(path string, data []byte, format Format) (*usersrc.Source, error) {
	switch format {
	case FormatPHP:
		return parsePHP(path, data)
	case FormatYAML:
		return parseYAML(path, data)
	case FormatTOML:
		return parseTOML(path, data)
	}
	return nil, &usersrc.ParseError{
		Path: path,
		Err:  errors.Wrapf(usersrc.ErrUnsupportedFormat, "%q", string(format)),
	}
}
