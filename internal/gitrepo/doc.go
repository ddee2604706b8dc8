// Package gitrepo contains the git operations used to find and configure repositories.
//
// RepositoryManager wraps a shell executor and exposes the availability
// probe, the working-tree probe, and local configuration reads and writes as
// plain Go methods so callers never assemble git argument lists themselves.
package gitrepo
