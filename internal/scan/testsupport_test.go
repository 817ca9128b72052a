package scan_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/temirov/mirrorcheck/internal/scan"
)

// fakeCommitGraph maps a commit to its parent commits.
type fakeCommitGraph map[scan.CommitIdentifier][]scan.CommitIdentifier

type fakeCommitIterator struct {
	pending []scan.CommitIdentifier
	closed  bool
}

func (iterator *fakeCommitIterator) Next() (scan.CommitIdentifier, error) {
	if len(iterator.pending) == 0 {
		return "", io.EOF
	}
	nextCommit := iterator.pending[0]
	iterator.pending = iterator.pending[1:]
	return nextCommit, nil
}

func (iterator *fakeCommitIterator) Close() {
	iterator.closed = true
}

type fakeRemote struct {
	remoteName     string
	remoteURL      string
	hasURL         bool
	usernameHint   string
	usernameOnly   bool
	fetchError     error
	fetchCount     int
	seenCredential scan.Credential
}

func (remote *fakeRemote) Name() string {
	return remote.remoteName
}

func (remote *fakeRemote) URL() (string, bool) {
	return remote.remoteURL, remote.hasURL
}

func (remote *fakeRemote) Fetch(selectCredential scan.CredentialSelector) error {
	remote.fetchCount++
	remote.seenCredential = selectCredential(remote.usernameHint, remote.usernameOnly)
	return remote.fetchError
}

type fakeBranch struct {
	branchName    string
	nameError     error
	referenceName string
	upstream      scan.Branch
	upstreamError error
}

func (branch *fakeBranch) Name() (string, error) {
	if branch.nameError != nil {
		return "", branch.nameError
	}
	return branch.branchName, nil
}

func (branch *fakeBranch) ReferenceName() string {
	return branch.referenceName
}

func (branch *fakeBranch) Upstream() (scan.Branch, error) {
	if branch.upstreamError != nil {
		return nil, branch.upstreamError
	}
	return branch.upstream, nil
}

type fakeRepository struct {
	remoteNames      []string
	remoteNamesError error
	remotes          map[string]*fakeRemote
	branches         []scan.Branch
	branchesError    error
	referenceRemotes map[string]string
	commits          map[string]scan.CommitIdentifier
	graph            fakeCommitGraph
	walkError        error
}

func (repository *fakeRepository) RemoteNames() ([]string, error) {
	if repository.remoteNamesError != nil {
		return nil, repository.remoteNamesError
	}
	return repository.remoteNames, nil
}

func (repository *fakeRepository) Remote(remoteName string) (scan.Remote, error) {
	remoteHandle, present := repository.remotes[remoteName]
	if !present {
		return nil, fmt.Errorf("%w: %s", scan.ErrRemoteNotFound, remoteName)
	}
	return remoteHandle, nil
}

func (repository *fakeRepository) LocalBranches() ([]scan.Branch, error) {
	if repository.branchesError != nil {
		return nil, repository.branchesError
	}
	return repository.branches, nil
}

func (repository *fakeRepository) RemoteNameForReference(fullyQualifiedReferenceName string) (string, error) {
	remoteName, present := repository.referenceRemotes[fullyQualifiedReferenceName]
	if !present {
		return "", fmt.Errorf("no remote tracks reference %s", fullyQualifiedReferenceName)
	}
	return remoteName, nil
}

func (repository *fakeRepository) ResolveCommit(fullyQualifiedReferenceName string) (scan.CommitIdentifier, error) {
	commitIdentifier, present := repository.commits[fullyQualifiedReferenceName]
	if !present {
		return "", fmt.Errorf("reference %s does not resolve to a commit", fullyQualifiedReferenceName)
	}
	return commitIdentifier, nil
}

// WalkAncestors yields the seed commit followed by every transitively reachable
// parent, breadth first.
func (repository *fakeRepository) WalkAncestors(seedCommit scan.CommitIdentifier) (scan.CommitIterator, error) {
	if repository.walkError != nil {
		return nil, repository.walkError
	}

	visited := map[scan.CommitIdentifier]struct{}{}
	queue := []scan.CommitIdentifier{seedCommit}
	var walkOrder []scan.CommitIdentifier
	for len(queue) > 0 {
		currentCommit := queue[0]
		queue = queue[1:]
		if _, alreadyVisited := visited[currentCommit]; alreadyVisited {
			continue
		}
		visited[currentCommit] = struct{}{}
		walkOrder = append(walkOrder, currentCommit)
		queue = append(queue, repository.graph[currentCommit]...)
	}
	return &fakeCommitIterator{pending: walkOrder}, nil
}

type fakeBackend struct {
	repositories map[string]*fakeRepository
	openErrors   map[string]error
	openedPaths  []string
}

func (backend *fakeBackend) OpenRepository(repositoryPath string) (scan.Repository, error) {
	backend.openedPaths = append(backend.openedPaths, repositoryPath)
	if openError, present := backend.openErrors[repositoryPath]; present {
		return nil, openError
	}
	repositoryHandle, present := backend.repositories[repositoryPath]
	if !present {
		return nil, fmt.Errorf("%w: %s", scan.ErrNotARepository, repositoryPath)
	}
	return repositoryHandle, nil
}

var errFakeFetchRefused = errors.New("fetch refused by test remote")
