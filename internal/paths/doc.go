// Package paths resolves the directories usersrc2xml reads its own settings
// from. It wraps github.com/adrg/xdg so the search path follows the XDG Base
// Directory conventions on every operating system.
package paths
