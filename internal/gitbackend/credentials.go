package gitbackend

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/temirov/mirrorcheck/internal/scan"
)

const (
	sshProtocolNameConstant                   = "ssh"
	noKeyPassphraseConstant                   = ""
	unsupportedCredentialKindTemplateConstant = "unsupported credential kind %q for remote %s"
)

// buildAuthenticationMethod derives the transport authentication for one remote
// URL. HTTPS remotes fetch anonymously; SSH remotes consult the credential
// selector with the username embedded in the URL. The go-git transport never
// issues a bare-username challenge, so the selector is always asked for a full
// credential.
func buildAuthenticationMethod(remoteURL string, selectCredential scan.CredentialSelector) (transport.AuthMethod, error) {
	parsedEndpoint, endpointError := transport.NewEndpoint(remoteURL)
	if endpointError != nil {
		return nil, endpointError
	}

	if parsedEndpoint.Protocol != sshProtocolNameConstant {
		return nil, nil
	}

	selectedCredential := selectCredential(parsedEndpoint.User, false)
	if selectedCredential.Kind != scan.CredentialKindSSHPrivateKey {
		return nil, fmt.Errorf(unsupportedCredentialKindTemplateConstant, selectedCredential.Kind, remoteURL)
	}

	publicKeys, keyError := gitssh.NewPublicKeysFromFile(selectedCredential.Username, selectedCredential.PrivateKeyPath, noKeyPassphraseConstant)
	if keyError != nil {
		return nil, keyError
	}
	return publicKeys, nil
}
