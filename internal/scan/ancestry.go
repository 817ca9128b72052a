package scan

import (
	"errors"
	"io"
)

// AncestryResolver answers commit reachability questions over a repository's
// history graph.
type AncestryResolver struct{}

// NewAncestryResolver constructs an ancestry resolver.
func NewAncestryResolver() *AncestryResolver {
	return &AncestryResolver{}
}

// IsAncestor reports whether candidate is reachable by walking parent edges from
// target. A commit counts as its own ancestor. Every query seeds a fresh walk,
// because queries run in both directions and backend walks are not restartable.
func (resolver *AncestryResolver) IsAncestor(repository Repository, candidate CommitIdentifier, target CommitIdentifier) (bool, error) {
	ancestorIterator, walkError := repository.WalkAncestors(target)
	if walkError != nil {
		return false, walkError
	}
	defer ancestorIterator.Close()

	for {
		commitIdentifier, nextError := ancestorIterator.Next()
		if errors.Is(nextError, io.EOF) {
			return false, nil
		}
		if nextError != nil {
			return false, nextError
		}
		if commitIdentifier == candidate {
			return true, nil
		}
	}
}
