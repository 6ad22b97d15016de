// Package defaultbranch aligns a destination repository's default branch with
// its source repository.
package defaultbranch
