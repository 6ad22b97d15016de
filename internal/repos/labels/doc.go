// Package labels clones issue labels between GitHub repositories.
package labels
