package gitbackend

import (
	"errors"

	git "github.com/go-git/go-git/v5"

	"github.com/temirov/mirrorcheck/internal/scan"
)

const remoteWithoutURLMessageConstant = "remote has no configured url"

type remote struct {
	gitRemote *git.Remote
}

// Name returns the configured remote name.
func (wrapped *remote) Name() string {
	return wrapped.gitRemote.Config().Name
}

// URL returns the remote's primary URL when one is configured.
func (wrapped *remote) URL() (string, bool) {
	configuredURLs := wrapped.gitRemote.Config().URLs
	if len(configuredURLs) == 0 {
		return "", false
	}
	return configuredURLs[0], true
}

// Fetch downloads the remote's references using its default refspecs. The fetch
// mutates nothing beyond the repository's own object and reference stores; an
// already up-to-date remote counts as a successful fetch.
func (wrapped *remote) Fetch(selectCredential scan.CredentialSelector) error {
	remoteURL, hasURL := wrapped.URL()
	if !hasURL {
		return errors.New(remoteWithoutURLMessageConstant)
	}

	authenticationMethod, authenticationError := buildAuthenticationMethod(remoteURL, selectCredential)
	if authenticationError != nil {
		return authenticationError
	}

	fetchError := wrapped.gitRemote.Fetch(&git.FetchOptions{Auth: authenticationMethod})
	if errors.Is(fetchError, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return fetchError
}
