// Package scaffold renders cookiecutter-style project templates.
//
// A template is a directory tree whose file names and file bodies may embed
// template tokens, plus a scaffold.yaml manifest declaring the prompts whose
// answers feed the substitution. Rendering is deterministic and refuses to
// overwrite existing destination paths.
package scaffold
