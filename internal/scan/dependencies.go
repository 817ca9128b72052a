package scan

import "errors"

// Sentinel errors surfaced by version-control backends for the recoverable
// conditions the scan distinguishes by name.
var (
	// ErrNotARepository reports that a directory could not be opened as a repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrRemoteNotFound reports that a remote lookup by name failed.
	ErrRemoteNotFound = errors.New("remote not found")
	// ErrNoUpstream reports that a local branch has no upstream tracking branch.
	ErrNoUpstream = errors.New("no upstream tracking branch")
)

// RepositoryBackend opens version-controlled directories for auditing.
type RepositoryBackend interface {
	OpenRepository(repositoryPath string) (Repository, error)
}

// Repository exposes the read-plus-fetch operations the scan performs against one
// opened checkout. Implementations must never mutate repository state beyond
// their own object and reference stores during a fetch.
type Repository interface {
	RemoteNames() ([]string, error)
	Remote(remoteName string) (Remote, error)
	LocalBranches() ([]Branch, error)
	RemoteNameForReference(fullyQualifiedReferenceName string) (string, error)
	ResolveCommit(fullyQualifiedReferenceName string) (CommitIdentifier, error)
	WalkAncestors(seedCommit CommitIdentifier) (CommitIterator, error)
}

// Remote models one configured remote of a repository.
type Remote interface {
	Name() string
	URL() (string, bool)
	Fetch(selectCredential CredentialSelector) error
}

// Branch models a local or remote-tracking branch reference. Name returns the
// human-readable branch name, lossily decoded when the stored bytes are not
// valid text; ReferenceName returns the fully qualified reference name.
type Branch interface {
	Name() (string, error)
	ReferenceName() string
	Upstream() (Branch, error)
}

// CommitIterator yields ancestor commit identifiers in an order that visits
// parents after children. Next returns io.EOF once the walk is exhausted. A
// fresh iterator is required per query; iterators are not restartable.
type CommitIterator interface {
	Next() (CommitIdentifier, error)
	Close()
}
