// Package gitbackend implements the scan package's version-control backend
// contracts on top of go-git: opening repositories, enumerating remotes and
// local branches, fetching with SSH public-key authentication, resolving
// references to commits, and walking commit ancestry.
package gitbackend
