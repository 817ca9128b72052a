package scan

const defaultFetchUsernameConstant = "git"

// RemoteSyncer fetches every qualifying remote of a repository sequentially and
// records which ones synced this run. A failed fetch excludes its remote from
// the synced set but never prevents the remaining remotes from being attempted.
type RemoteSyncer struct {
	privateKeyPath  string
	defaultUsername string
}

// NewRemoteSyncer constructs a syncer that authenticates with the provided SSH
// private key, using defaultUsername when a remote URL embeds no username.
func NewRemoteSyncer(privateKeyPath string, defaultUsername string) *RemoteSyncer {
	if len(defaultUsername) == 0 {
		defaultUsername = defaultFetchUsernameConstant
	}
	return &RemoteSyncer{privateKeyPath: privateKeyPath, defaultUsername: defaultUsername}
}

// SyncRemotes fetches the qualified remotes in the order given and returns the
// set of remote names whose fetch succeeded. The set is valid only for the
// entry currently being processed.
func (syncer *RemoteSyncer) SyncRemotes(entryPath string, qualifiedRemotes []QualifiedRemote, reporter *DiagnosticsReporter) SyncedRemoteSet {
	syncedRemotes := make(SyncedRemoteSet)
	for _, qualifiedRemote := range qualifiedRemotes {
		fetchError := qualifiedRemote.Handle.Fetch(syncer.SelectCredential)
		if fetchError != nil {
			reporter.Append(DiagnosticSeverityError, remoteFetchFailedMessageTemplateConstant, entryPath, qualifiedRemote.Descriptor.Name, fetchError)
			continue
		}

		syncedRemotes.Add(qualifiedRemote.Descriptor.Name)
		reporter.AppendVerbose(remoteFetchedMessageTemplateConstant, entryPath, qualifiedRemote.Descriptor.Name)
	}
	return syncedRemotes
}

// SelectCredential resolves the credential strategy for one authentication
// challenge: a bare username when the transport asks only for that, otherwise
// SSH public-key authentication with the configured private key. Passphrase
// protected keys are not supported.
func (syncer *RemoteSyncer) SelectCredential(usernameHint string, usernameOnlyChallenge bool) Credential {
	username := usernameHint
	if len(username) == 0 {
		username = syncer.defaultUsername
	}

	if usernameOnlyChallenge {
		return Credential{Kind: CredentialKindUsernameOnly, Username: username}
	}

	return Credential{
		Kind:           CredentialKindSSHPrivateKey,
		Username:       username,
		PrivateKeyPath: syncer.privateKeyPath,
	}
}
