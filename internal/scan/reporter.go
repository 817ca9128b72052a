package scan

import (
	"fmt"
	"io"
)

const diagnosticLineSuffixConstant = "\n"

// DiagnosticsReporter accumulates the ordered diagnostics of the entry currently
// being processed. The caller flushes the collected batch exactly once after the
// entry completes, so diagnostics of different entries never interleave and an
// early error path cannot swallow messages already recorded.
type DiagnosticsReporter struct {
	verbose     bool
	diagnostics []Diagnostic
}

// NewDiagnosticsReporter constructs a reporter for one directory entry.
func NewDiagnosticsReporter(verbose bool) *DiagnosticsReporter {
	return &DiagnosticsReporter{verbose: verbose}
}

// Append records a diagnostic that is emitted regardless of verbosity.
func (reporter *DiagnosticsReporter) Append(severity DiagnosticSeverity, messageTemplate string, arguments ...any) {
	reporter.diagnostics = append(reporter.diagnostics, Diagnostic{
		Severity: severity,
		Message:  fmt.Sprintf(messageTemplate, arguments...),
	})
}

// AppendVerbose records an entry-only informational diagnostic that is dropped
// unless verbose mode is enabled.
func (reporter *DiagnosticsReporter) AppendVerbose(messageTemplate string, arguments ...any) {
	if !reporter.verbose {
		return
	}
	reporter.Append(DiagnosticSeverityInfo, messageTemplate, arguments...)
}

// Diagnostics returns the collected batch in emission order.
func (reporter *DiagnosticsReporter) Diagnostics() []Diagnostic {
	collected := make([]Diagnostic, len(reporter.diagnostics))
	copy(collected, reporter.diagnostics)
	return collected
}

// Flush writes every collected diagnostic to the writer in emission order and
// clears the batch, so a second flush emits nothing.
func (reporter *DiagnosticsReporter) Flush(outputWriter io.Writer) {
	for _, diagnostic := range reporter.diagnostics {
		fmt.Fprint(outputWriter, diagnostic.Message+diagnosticLineSuffixConstant)
	}
	reporter.diagnostics = nil
}
