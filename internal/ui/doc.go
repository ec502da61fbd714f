// Package ui groups the terminal UI of courses.
//
// Subpackages:
//
//   - browser: the interactive course list (bubbletea)
//   - progress: a spinner shown on stderr while the catalog loads
//   - static: tables for non-interactive list output
//   - styles: theme colors and favorite symbols shared by all of them
//
// Everything renders to stderr except static tables, which are primary
// output and go to stdout.
package ui
