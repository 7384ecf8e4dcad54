// Package loader reads userSrc definitions from disk.
//
// Three source formats are understood:
//
//   - php: the legacy userSrc.php file. Only the literal subset used by such
//     files is read (assignments of strings, numbers and arrays); nothing is
//     executed.
//   - yaml: YAML or JSON with top-level keys envVars, aliases, bashCode, cmdCode.
//   - toml: the same keys as YAML, as tables, inline tables or arrays.
//
// Every binding is checked against its expected shape while loading, so a
// list where a mapping belongs is a *usersrc.ParseError rather than odd output.
package loader
