// Package scan implements the backup audit that verifies every local branch in a
// directory of checkouts is mirrored on a trusted remote.
//
// It exposes CommandBuilder for wiring the scan Cobra command, Service for driving
// the directory walk programmatically, and the classification collaborators
// (RemoteQualifier, RemoteSyncer, BranchAuditor, AncestryResolver) together with
// the DiagnosticsReporter that batches per-entry output. The version-control
// mechanics are consumed through the RepositoryBackend contracts declared in
// dependencies.go.
package scan
