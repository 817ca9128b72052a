package scan

// SyncStatus classifies one local branch against its upstream tracking branch.
// Exactly one status is assigned per branch per run.
type SyncStatus string

// Terminal branch statuses produced by the auditor.
const (
	SyncStatusSynced                  SyncStatus = "synced"
	SyncStatusAheadOfUpstream         SyncStatus = "ahead_of_upstream"
	SyncStatusDiverged                SyncStatus = "diverged"
	SyncStatusNoUpstream              SyncStatus = "no_upstream"
	SyncStatusUpstreamRemoteNotSynced SyncStatus = "upstream_remote_not_synced"
	SyncStatusNameUnresolvable        SyncStatus = "name_unresolvable"
)

// DiagnosticSeverity tags the weight of one reported condition.
type DiagnosticSeverity string

// Supported diagnostic severities.
const (
	DiagnosticSeverityInfo     DiagnosticSeverity = "info"
	DiagnosticSeverityWarning  DiagnosticSeverity = "warning"
	DiagnosticSeverityError    DiagnosticSeverity = "error"
	DiagnosticSeverityCritical DiagnosticSeverity = "critical"
)

// Diagnostic is one rendered outcome message associated with a directory entry.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Message  string
}

// CommitIdentifier names a commit opaquely; backends render their native object
// identifiers into it.
type CommitIdentifier string

// RemoteDescriptor captures a remote's name, URL, and qualification result.
// Descriptors are computed once per entry and never re-derived after fetch.
type RemoteDescriptor struct {
	Name      string
	URL       string
	Qualifies bool
}

// QualifiedRemote pairs a qualifying descriptor with the backend handle used to
// fetch it.
type QualifiedRemote struct {
	Descriptor RemoteDescriptor
	Handle     Remote
}

// SyncedRemoteSet tracks the remotes fetched successfully while processing one
// entry. The set is written by RemoteSyncer and read by BranchAuditor; it is
// discarded when the entry completes.
type SyncedRemoteSet map[string]struct{}

// Add records a successfully fetched remote.
func (set SyncedRemoteSet) Add(remoteName string) {
	set[remoteName] = struct{}{}
}

// Contains reports whether the named remote was fetched during this entry.
func (set SyncedRemoteSet) Contains(remoteName string) bool {
	_, present := set[remoteName]
	return present
}

// BranchAuditOutcome reports the auditor's terminal decision for one branch.
// Classified is false when the branch was skipped after a diagnosed backend
// resolution failure and no named status applies.
type BranchAuditOutcome struct {
	BranchName string
	Status     SyncStatus
	Classified bool
}

// BranchAuditRecord ties a classified branch to the directory entry that owns it.
type BranchAuditRecord struct {
	EntryPath  string
	BranchName string
	Status     SyncStatus
}

// CredentialKind enumerates the explicit credential strategies used for fetching.
type CredentialKind string

// Credential strategy variants.
const (
	CredentialKindUsernameOnly  CredentialKind = "username_only"
	CredentialKindSSHPrivateKey CredentialKind = "ssh_private_key"
)

// Credential describes how one fetch should authenticate against a remote.
type Credential struct {
	Kind           CredentialKind
	Username       string
	PrivateKeyPath string
}

// CredentialSelector resolves the credential for an authentication challenge.
// The username hint comes from the remote URL when the URL embeds one;
// usernameOnlyChallenge is true when the transport asks for a bare username
// before the real authentication round.
type CredentialSelector func(usernameHint string, usernameOnlyChallenge bool) Credential
