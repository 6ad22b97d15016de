// Package scaffold wires the template rendering commands that materialize
// cookiecutter-style project templates.
package scaffold
