package gitbackend

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/temirov/mirrorcheck/internal/scan"
)

const (
	refSpecForcePrefixConstant           = "+"
	refSpecSeparatorConstant             = ":"
	refSpecWildcardConstant              = "*"
	noRemoteForReferenceTemplateConstant = "no remote tracks reference %s"
	unbornReferenceTemplateConstant      = "reference %s does not resolve to a commit"
	remoteLookupFailureTemplateConstant  = "%w: %v"
)

type repository struct {
	gitRepository *git.Repository
}

// RemoteNames returns the configured remote names in sorted order.
func (wrapped *repository) RemoteNames() ([]string, error) {
	gitRemotes, listError := wrapped.gitRepository.Remotes()
	if listError != nil {
		return nil, listError
	}

	remoteNames := make([]string, 0, len(gitRemotes))
	for _, gitRemote := range gitRemotes {
		remoteNames = append(remoteNames, gitRemote.Config().Name)
	}
	sort.Strings(remoteNames)
	return remoteNames, nil
}

// Remote looks up one remote by name, mapping missing remotes to
// scan.ErrRemoteNotFound.
func (wrapped *repository) Remote(remoteName string) (scan.Remote, error) {
	gitRemote, lookupError := wrapped.gitRepository.Remote(remoteName)
	if lookupError != nil {
		if errors.Is(lookupError, git.ErrRemoteNotFound) {
			return nil, fmt.Errorf(remoteLookupFailureTemplateConstant, scan.ErrRemoteNotFound, lookupError)
		}
		return nil, lookupError
	}
	return &remote{gitRemote: gitRemote}, nil
}

// LocalBranches returns the repository's local branches sorted by reference name.
func (wrapped *repository) LocalBranches() ([]scan.Branch, error) {
	branchIterator, iterationError := wrapped.gitRepository.Branches()
	if iterationError != nil {
		return nil, iterationError
	}
	defer branchIterator.Close()

	var localBranches []scan.Branch
	collectError := branchIterator.ForEach(func(branchReference *plumbing.Reference) error {
		localBranches = append(localBranches, &branch{
			owner:     wrapped,
			reference: branchReference,
		})
		return nil
	})
	if collectError != nil {
		return nil, collectError
	}

	sort.Slice(localBranches, func(leftIndex int, rightIndex int) bool {
		return localBranches[leftIndex].ReferenceName() < localBranches[rightIndex].ReferenceName()
	})
	return localBranches, nil
}

// RemoteNameForReference resolves which remote owns a fully qualified
// remote-tracking reference by matching it against the destination side of each
// remote's fetch refspecs.
func (wrapped *repository) RemoteNameForReference(fullyQualifiedReferenceName string) (string, error) {
	repositoryConfiguration, configurationError := wrapped.gitRepository.Config()
	if configurationError != nil {
		return "", configurationError
	}

	remoteNames := make([]string, 0, len(repositoryConfiguration.Remotes))
	for remoteName := range repositoryConfiguration.Remotes {
		remoteNames = append(remoteNames, remoteName)
	}
	sort.Strings(remoteNames)

	for _, remoteName := range remoteNames {
		remoteConfiguration := repositoryConfiguration.Remotes[remoteName]
		for _, fetchRefSpec := range remoteConfiguration.Fetch {
			destinationPattern := refSpecDestinationPattern(string(fetchRefSpec))
			if referenceMatchesPattern(fullyQualifiedReferenceName, destinationPattern) {
				return remoteName, nil
			}
		}
	}

	return "", fmt.Errorf(noRemoteForReferenceTemplateConstant, fullyQualifiedReferenceName)
}

// ResolveCommit resolves a reference, following symbolic links, to its commit
// identifier. References without a direct target are reported as unborn.
func (wrapped *repository) ResolveCommit(fullyQualifiedReferenceName string) (scan.CommitIdentifier, error) {
	resolvedReference, resolveError := wrapped.gitRepository.Reference(plumbing.ReferenceName(fullyQualifiedReferenceName), true)
	if resolveError != nil {
		return "", resolveError
	}

	commitHash := resolvedReference.Hash()
	if commitHash.IsZero() {
		return "", fmt.Errorf(unbornReferenceTemplateConstant, fullyQualifiedReferenceName)
	}
	return scan.CommitIdentifier(commitHash.String()), nil
}

// WalkAncestors starts a fresh commit walk seeded at the provided commit. The
// walk's depth-first order visits parents after children.
func (wrapped *repository) WalkAncestors(seedCommit scan.CommitIdentifier) (scan.CommitIterator, error) {
	commitIterator, logError := wrapped.gitRepository.Log(&git.LogOptions{From: plumbing.NewHash(string(seedCommit))})
	if logError != nil {
		return nil, logError
	}
	return &ancestorIterator{commits: commitIterator}, nil
}

type ancestorIterator struct {
	commits object.CommitIter
}

// Next yields the next ancestor commit identifier, returning io.EOF when the
// walk is exhausted.
func (iterator *ancestorIterator) Next() (scan.CommitIdentifier, error) {
	nextCommit, nextError := iterator.commits.Next()
	if errors.Is(nextError, io.EOF) {
		return "", io.EOF
	}
	if nextError != nil {
		return "", nextError
	}
	return scan.CommitIdentifier(nextCommit.Hash.String()), nil
}

// Close releases the underlying commit iterator.
func (iterator *ancestorIterator) Close() {
	iterator.commits.Close()
}

// refSpecDestinationPattern extracts the destination side of a fetch refspec
// such as "+refs/heads/*:refs/remotes/origin/*".
func refSpecDestinationPattern(refSpec string) string {
	trimmedRefSpec := strings.TrimPrefix(refSpec, refSpecForcePrefixConstant)
	separatorIndex := strings.Index(trimmedRefSpec, refSpecSeparatorConstant)
	if separatorIndex < 0 {
		return trimmedRefSpec
	}
	return trimmedRefSpec[separatorIndex+1:]
}

// referenceMatchesPattern matches a reference name against a refspec pattern
// holding at most one wildcard.
func referenceMatchesPattern(referenceName string, pattern string) bool {
	wildcardIndex := strings.Index(pattern, refSpecWildcardConstant)
	if wildcardIndex < 0 {
		return referenceName == pattern
	}

	patternPrefix := pattern[:wildcardIndex]
	patternSuffix := pattern[wildcardIndex+len(refSpecWildcardConstant):]
	if len(referenceName) < len(patternPrefix)+len(patternSuffix) {
		return false
	}
	return strings.HasPrefix(referenceName, patternPrefix) && strings.HasSuffix(referenceName, patternSuffix)
}
