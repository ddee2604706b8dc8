// Package pullstrategy finds the single prefix-named git working tree beneath a
// search root and configures its local pull strategy (pull.rebase and pull.ff).
package pullstrategy
