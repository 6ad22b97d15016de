// Package teams mirrors organization team access between GitHub repositories.
package teams
