// Package config provides the usersrc2xml tool's own settings.
//
// Settings are optional. They are read with Viper from config.yaml in the
// current directory or in the per-user config directory, and may be
// overridden by USERSRC2XML_* environment variables and command-line flags:
//
//	indent: "  "   # leading whitespace of child elements
//	escape: true   # escape XML special characters in names and values
//	format: ""     # force a source format: php, yaml, toml (empty: by extension)
//
// Use [Load] with an explicit path for a specific file, or with an empty path
// to search the default locations, falling back to defaults when no file exists.
package config
