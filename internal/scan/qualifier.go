package scan

import (
	"strings"
	"unicode/utf8"
)

// Default trusted-host URL prefixes. A remote qualifies when its URL starts with
// one of these, compared case-sensitively with no normalization.
const (
	githubHTTPSPrefixConstant = "https://github.com/"
	githubSSHPrefixConstant   = "git@github.com:"
)

// DefaultAcceptedURLPrefixes returns the baseline trusted-host prefix list.
func DefaultAcceptedURLPrefixes() []string {
	return []string{githubHTTPSPrefixConstant, githubSSHPrefixConstant}
}

// RemoteQualifier decides whether remote URLs belong to a trusted host.
type RemoteQualifier struct {
	acceptedURLPrefixes []string
}

// NewRemoteQualifier constructs a qualifier for the provided prefix list, falling
// back to the defaults when the list is empty.
func NewRemoteQualifier(acceptedURLPrefixes []string) *RemoteQualifier {
	if len(acceptedURLPrefixes) == 0 {
		acceptedURLPrefixes = DefaultAcceptedURLPrefixes()
	}
	duplicatedPrefixes := make([]string, len(acceptedURLPrefixes))
	copy(duplicatedPrefixes, acceptedURLPrefixes)
	return &RemoteQualifier{acceptedURLPrefixes: duplicatedPrefixes}
}

// Qualifies reports whether the URL begins with one of the accepted prefixes.
func (qualifier *RemoteQualifier) Qualifies(remoteURL string) bool {
	for _, acceptedPrefix := range qualifier.acceptedURLPrefixes {
		if strings.HasPrefix(remoteURL, acceptedPrefix) {
			return true
		}
	}
	return false
}

// QualifyingRemotes resolves every remote of the repository, diagnoses the ones
// that cannot be used (undecodable name, failed lookup, missing URL) or that do
// not point at a trusted host, and returns the qualifying remainder. A broken
// remote never aborts the processing of its siblings; only the remote listing
// itself can fail.
func (qualifier *RemoteQualifier) QualifyingRemotes(repository Repository, entryPath string, reporter *DiagnosticsReporter) ([]QualifiedRemote, error) {
	remoteNames, listError := repository.RemoteNames()
	if listError != nil {
		return nil, listError
	}

	var qualifyingRemotes []QualifiedRemote
	for _, remoteName := range remoteNames {
		if !utf8.ValidString(remoteName) {
			reporter.Append(DiagnosticSeverityError, remoteBadNameMessageTemplateConstant, entryPath, strings.ToValidUTF8(remoteName, lossyReplacementConstant))
			continue
		}

		remoteHandle, lookupError := repository.Remote(remoteName)
		if lookupError != nil {
			reporter.Append(DiagnosticSeverityError, remoteNotFoundMessageTemplateConstant, entryPath, remoteName)
			continue
		}

		remoteURL, hasURL := remoteHandle.URL()
		if !hasURL {
			reporter.Append(DiagnosticSeverityError, remoteMissingURLMessageTemplateConstant, entryPath, remoteName)
			continue
		}

		descriptor := RemoteDescriptor{
			Name:      remoteName,
			URL:       remoteURL,
			Qualifies: qualifier.Qualifies(remoteURL),
		}
		if !descriptor.Qualifies {
			reporter.Append(DiagnosticSeverityWarning, unqualifiedRemoteMessageTemplateConstant, entryPath, remoteName)
			continue
		}

		qualifyingRemotes = append(qualifyingRemotes, QualifiedRemote{Descriptor: descriptor, Handle: remoteHandle})
	}

	return qualifyingRemotes, nil
}

const lossyReplacementConstant = "�"
