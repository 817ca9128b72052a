package gitbackend

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/temirov/mirrorcheck/internal/scan"
)

const (
	lossyNameReplacementConstant       = "�"
	upstreamMissingTemplateConstant    = "%w for branch %s"
	trackingRefMissingTemplateConstant = "%w: tracking reference %s not present locally"
)

type branch struct {
	owner     *repository
	reference *plumbing.Reference
}

// Name returns the short branch name, lossily decoded when the stored bytes are
// not valid text.
func (wrapped *branch) Name() (string, error) {
	return strings.ToValidUTF8(wrapped.reference.Name().Short(), lossyNameReplacementConstant), nil
}

// ReferenceName returns the fully qualified reference name.
func (wrapped *branch) ReferenceName() string {
	return string(wrapped.reference.Name())
}

// Upstream resolves the branch's remote-tracking branch from the repository
// configuration. A branch without tracking configuration, or whose tracking
// reference is absent locally, surfaces scan.ErrNoUpstream.
func (wrapped *branch) Upstream() (scan.Branch, error) {
	repositoryConfiguration, configurationError := wrapped.owner.gitRepository.Config()
	if configurationError != nil {
		return nil, configurationError
	}

	branchShortName := wrapped.reference.Name().Short()
	branchConfiguration, hasConfiguration := repositoryConfiguration.Branches[branchShortName]
	if !hasConfiguration || len(branchConfiguration.Remote) == 0 || len(branchConfiguration.Merge) == 0 {
		return nil, fmt.Errorf(upstreamMissingTemplateConstant, scan.ErrNoUpstream, branchShortName)
	}

	trackingReferenceName := plumbing.NewRemoteReferenceName(branchConfiguration.Remote, branchConfiguration.Merge.Short())
	trackingReference, trackingError := wrapped.owner.gitRepository.Reference(trackingReferenceName, true)
	if trackingError != nil {
		return nil, fmt.Errorf(trackingRefMissingTemplateConstant, scan.ErrNoUpstream, trackingReferenceName)
	}

	return &branch{owner: wrapped.owner, reference: plumbing.NewHashReference(trackingReferenceName, trackingReference.Hash())}, nil
}
