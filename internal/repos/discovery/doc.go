// Package discovery locates git working trees by directory name beneath a search root.
//
// Walker produces a lazy, depth-bounded, depth-first sequence of directory
// levels over an afero filesystem; Locator filters each level's
// subdirectories by name prefix and keeps only those a WorkingTreeProber
// accepts.
package discovery
