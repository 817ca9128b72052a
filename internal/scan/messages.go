package scan

// Message templates for the per-entry audit report. The emoji markers mirror the
// report vocabulary: ⚠️/❗ skipped entries, 💥 missing upstreams, 🚨 data at
// risk, ✅ safe, 📝 verbose progress notes.
const (
	symlinkMessageTemplateConstant            = "⚠️ Found symlink: %s. Ignoring this entry; symlinks are not expected here and their meaning is unspecified."
	plainFileMessageTemplateConstant          = "❗ Found file: %s. Files are unlikely to be git-pushed; move them somewhere safe if necessary."
	nonGitDirectoryMessageTemplateConstant    = "❗ %s: %s. This is not a git repository."
	entryErrorMessageTemplateConstant         = "🚨 Failed for the entry %s: %v"
	remoteBadNameMessageTemplateConstant      = "🚨 %s: Remote %s skipped due to invalid text encoding"
	remoteNotFoundMessageTemplateConstant     = "🚨 %s: Remote %s not found"
	remoteMissingURLMessageTemplateConstant   = "🚨 %s: Remote %s has no url"
	unqualifiedRemoteMessageTemplateConstant  = "⚠️ %s: Remote %s is not a qualifying remote"
	remoteFetchFailedMessageTemplateConstant  = "🚨 %s: Failed to fetch remote %s: %v"
	remoteFetchedMessageTemplateConstant      = "📝 %s: Synced remote %s"
	branchNameErrorMessageTemplateConstant    = "🚨 %s: Failed to get the name of a branch: %v"
	noUpstreamMessageTemplateConstant         = "💥 %s: Local branch %s has no remote tracking branch: %v"
	branchErrorMessageTemplateConstant        = "🚨 %s: An operation on branch %s failed: %v"
	remoteNotSyncedMessageTemplateConstant    = "🚨 %s: Branch %s has non-fetched remote %s"
	branchAheadMessageTemplateConstant        = "🚨 %s: Local branch %s is ahead of the upstream"
	branchDivergedMessageTemplateConstant     = "🚨 %s: Local branch %s is not in the ancestry of the upstream"
	branchSyncedMessageTemplateConstant       = "✅ %s: Local branch %s is synced with the remote"
	lookingAtEntryMessageTemplateConstant     = "📝 Looking at the entry %s"
	entryIsRepositoryMessageTemplateConstant  = "📝 %s: This is a git repo ✔︎"
	lookingAtBranchMessageTemplateConstant    = "📝 %s: Looking at branch %s"
	upstreamNameMessageTemplateConstant       = "📝 %s: Branch %s has upstream %s"
	upstreamRemoteNameMessageTemplateConstant = "📝 %s: Branch %s has upstream remote %s"
)
