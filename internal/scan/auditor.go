package scan

import "errors"

// BranchAuditor classifies local branches against their upstream tracking
// branches. Each branch walks a fixed sequence of checks; the first failing
// check determines the terminal status and nothing is retried within a run.
type BranchAuditor struct {
	ancestryResolver *AncestryResolver
}

// NewBranchAuditor constructs an auditor using the provided ancestry resolver.
func NewBranchAuditor(ancestryResolver *AncestryResolver) *BranchAuditor {
	if ancestryResolver == nil {
		ancestryResolver = NewAncestryResolver()
	}
	return &BranchAuditor{ancestryResolver: ancestryResolver}
}

// AuditBranch resolves the branch's upstream, confirms the upstream's remote was
// synced this run, and classifies the branch by ancestry. Recoverable failures
// are diagnosed and produce a terminal status or a skipped outcome; a returned
// error is an unexpected backend failure that abandons the entry.
func (auditor *BranchAuditor) AuditBranch(entryPath string, repository Repository, branch Branch, syncedRemotes SyncedRemoteSet, reporter *DiagnosticsReporter) (BranchAuditOutcome, error) {
	branchName, nameError := branch.Name()
	if nameError != nil {
		reporter.Append(DiagnosticSeverityError, branchNameErrorMessageTemplateConstant, entryPath, nameError)
		return BranchAuditOutcome{Status: SyncStatusNameUnresolvable, Classified: true}, nil
	}
	reporter.AppendVerbose(lookingAtBranchMessageTemplateConstant, entryPath, branchName)

	upstreamBranch, upstreamError := branch.Upstream()
	if upstreamError != nil {
		if errors.Is(upstreamError, ErrNoUpstream) {
			reporter.Append(DiagnosticSeverityError, noUpstreamMessageTemplateConstant, entryPath, branchName, upstreamError)
			return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusNoUpstream, Classified: true}, nil
		}
		reporter.Append(DiagnosticSeverityError, branchErrorMessageTemplateConstant, entryPath, branchName, upstreamError)
		return BranchAuditOutcome{BranchName: branchName}, nil
	}

	upstreamName, upstreamNameError := upstreamBranch.Name()
	if upstreamNameError != nil {
		reporter.Append(DiagnosticSeverityError, branchNameErrorMessageTemplateConstant, entryPath, upstreamNameError)
		return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusNameUnresolvable, Classified: true}, nil
	}
	reporter.AppendVerbose(upstreamNameMessageTemplateConstant, entryPath, branchName, upstreamName)

	remoteName, remoteNameError := repository.RemoteNameForReference(upstreamBranch.ReferenceName())
	if remoteNameError != nil {
		reporter.Append(DiagnosticSeverityError, branchErrorMessageTemplateConstant, entryPath, upstreamBranch.ReferenceName(), remoteNameError)
		return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusNameUnresolvable, Classified: true}, nil
	}
	reporter.AppendVerbose(upstreamRemoteNameMessageTemplateConstant, entryPath, branchName, remoteName)

	if !syncedRemotes.Contains(remoteName) {
		reporter.Append(DiagnosticSeverityError, remoteNotSyncedMessageTemplateConstant, entryPath, branchName, remoteName)
		return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusUpstreamRemoteNotSynced, Classified: true}, nil
	}

	localCommit, localResolveError := repository.ResolveCommit(branch.ReferenceName())
	if localResolveError != nil {
		reporter.Append(DiagnosticSeverityError, branchErrorMessageTemplateConstant, entryPath, branchName, localResolveError)
		return BranchAuditOutcome{BranchName: branchName}, nil
	}

	upstreamCommit, upstreamResolveError := repository.ResolveCommit(upstreamBranch.ReferenceName())
	if upstreamResolveError != nil {
		reporter.Append(DiagnosticSeverityError, branchErrorMessageTemplateConstant, entryPath, branchName, upstreamResolveError)
		return BranchAuditOutcome{BranchName: branchName}, nil
	}

	// The common case is a fully pushed branch, so the local-in-upstream walk
	// runs first and the reverse walk only when the first comes back empty.
	localContained, localWalkError := auditor.ancestryResolver.IsAncestor(repository, localCommit, upstreamCommit)
	if localWalkError != nil {
		return BranchAuditOutcome{BranchName: branchName}, localWalkError
	}
	if localContained {
		reporter.Append(DiagnosticSeverityInfo, branchSyncedMessageTemplateConstant, entryPath, branchName)
		return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusSynced, Classified: true}, nil
	}

	upstreamContained, upstreamWalkError := auditor.ancestryResolver.IsAncestor(repository, upstreamCommit, localCommit)
	if upstreamWalkError != nil {
		return BranchAuditOutcome{BranchName: branchName}, upstreamWalkError
	}
	if upstreamContained {
		reporter.Append(DiagnosticSeverityError, branchAheadMessageTemplateConstant, entryPath, branchName)
		return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusAheadOfUpstream, Classified: true}, nil
	}

	reporter.Append(DiagnosticSeverityError, branchDivergedMessageTemplateConstant, entryPath, branchName)
	return BranchAuditOutcome{BranchName: branchName, Status: SyncStatusDiverged, Classified: true}, nil
}
