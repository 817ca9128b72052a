package scan

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	logEntryCountFieldConstant     = "entry_count"
	logDirectoryFieldConstant      = "repos_directory"
	logEntryFieldConstant          = "entry_path"
	scanStartedLogMessageConstant  = "scan started"
	scanFinishedLogMessageConstant = "scan finished"
	entryAbandonedLogMessage       = "entry abandoned after unexpected backend error"
)

// ScanOptions captures the per-run parameters of the directory scan.
type ScanOptions struct {
	ReposDirectory string
	Verbose        bool
}

// Service walks the target directory one level deep, classifies each entry, and
// drives remote syncing plus branch auditing for every repository found. One
// entry's failure never terminates the scan of the others.
type Service struct {
	backend      RepositoryBackend
	qualifier    *RemoteQualifier
	syncer       *RemoteSyncer
	auditor      *BranchAuditor
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided collaborators.
func NewService(backend RepositoryBackend, qualifier *RemoteQualifier, syncer *RemoteSyncer, auditor *BranchAuditor, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend:      backend,
		qualifier:    qualifier,
		syncer:       syncer,
		auditor:      auditor,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run scans the repositories directory and returns the classified branch
// records. Every entry's diagnostics are flushed as one batch before the next
// entry is processed, even when the entry's handling stops early.
func (service *Service) Run(executionContext context.Context, options ScanOptions) ([]BranchAuditRecord, error) {
	directoryEntries, readError := os.ReadDir(options.ReposDirectory)
	if readError != nil {
		return nil, readError
	}

	service.logger.Info(
		scanStartedLogMessageConstant,
		zap.String(logDirectoryFieldConstant, options.ReposDirectory),
		zap.Int(logEntryCountFieldConstant, len(directoryEntries)),
	)

	var auditRecords []BranchAuditRecord
	for _, directoryEntry := range directoryEntries {
		if contextError := executionContext.Err(); contextError != nil {
			return auditRecords, contextError
		}

		entryPath := filepath.Join(options.ReposDirectory, directoryEntry.Name())
		reporter := NewDiagnosticsReporter(options.Verbose)

		entryRecords, entryError := service.processEntry(entryPath, directoryEntry, reporter)
		if entryError != nil {
			service.logger.Debug(entryAbandonedLogMessage, zap.String(logEntryFieldConstant, entryPath), zap.Error(entryError))
			reporter.Append(DiagnosticSeverityCritical, entryErrorMessageTemplateConstant, entryPath, entryError)
		}

		reporter.Flush(service.outputWriter)
		auditRecords = append(auditRecords, entryRecords...)
	}

	service.logger.Info(
		scanFinishedLogMessageConstant,
		zap.String(logDirectoryFieldConstant, options.ReposDirectory),
		zap.Int(logEntryCountFieldConstant, len(directoryEntries)),
	)

	return auditRecords, nil
}

// processEntry handles one directory entry. Recoverable conditions are diagnosed
// through the reporter and end the entry quietly; a returned error is an
// unexpected backend failure the caller reports generically.
func (service *Service) processEntry(entryPath string, directoryEntry fs.DirEntry, reporter *DiagnosticsReporter) ([]BranchAuditRecord, error) {
	reporter.AppendVerbose(lookingAtEntryMessageTemplateConstant, entryPath)

	// DirEntry type bits come from the directory read and never follow symlinks.
	entryType := directoryEntry.Type()
	if entryType&fs.ModeSymlink != 0 {
		reporter.Append(DiagnosticSeverityWarning, symlinkMessageTemplateConstant, entryPath)
		return nil, nil
	}
	if !entryType.IsDir() {
		reporter.Append(DiagnosticSeverityWarning, plainFileMessageTemplateConstant, entryPath)
		return nil, nil
	}

	repository, openError := service.backend.OpenRepository(entryPath)
	if openError != nil {
		if errors.Is(openError, ErrNotARepository) {
			reporter.Append(DiagnosticSeverityWarning, nonGitDirectoryMessageTemplateConstant, openError, entryPath)
			return nil, nil
		}
		return nil, openError
	}
	reporter.AppendVerbose(entryIsRepositoryMessageTemplateConstant, entryPath)

	qualifiedRemotes, qualificationError := service.qualifier.QualifyingRemotes(repository, entryPath, reporter)
	if qualificationError != nil {
		return nil, qualificationError
	}

	syncedRemotes := service.syncer.SyncRemotes(entryPath, qualifiedRemotes, reporter)

	localBranches, branchListError := repository.LocalBranches()
	if branchListError != nil {
		return nil, branchListError
	}

	var entryRecords []BranchAuditRecord
	for _, localBranch := range localBranches {
		outcome, auditError := service.auditor.AuditBranch(entryPath, repository, localBranch, syncedRemotes, reporter)
		if auditError != nil {
			return entryRecords, auditError
		}
		if !outcome.Classified {
			continue
		}
		entryRecords = append(entryRecords, BranchAuditRecord{
			EntryPath:  entryPath,
			BranchName: outcome.BranchName,
			Status:     outcome.Status,
		})
	}

	return entryRecords, nil
}
