package gitbackend

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"

	"github.com/temirov/mirrorcheck/internal/scan"
)

const openFailureTemplateConstant = "%w: %v"

// Backend opens local checkouts through go-git.
type Backend struct{}

// NewBackend constructs a go-git backed repository backend.
func NewBackend() *Backend {
	return &Backend{}
}

// OpenRepository opens the directory as a git repository. Directories that are
// not repositories surface scan.ErrNotARepository so callers can diagnose and
// continue with their siblings.
func (backend *Backend) OpenRepository(repositoryPath string) (scan.Repository, error) {
	gitRepository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf(openFailureTemplateConstant, scan.ErrNotARepository, openError)
		}
		return nil, openError
	}
	return &repository{gitRepository: gitRepository}, nil
}
