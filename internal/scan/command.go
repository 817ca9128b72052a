package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/temirov/mirrorcheck/internal/utils/path"
)

const (
	commandUseConstant   = "mirrorcheck [repos-directory]"
	commandShortConstant = "Verify local branches are mirrored on a trusted remote"
	commandLongConstant  = "mirrorcheck walks a directory of checkouts, fetches every trusted remote, and " +
		"reports per local branch whether its history is fully contained in the upstream tracking branch."

	verboseFlagNameConstant       = "verbose"
	verboseFlagShorthandConstant  = "a"
	verboseFlagUsageConstant      = "Show all entries, including progress notes"
	sshKeyFlagNameConstant        = "ssh-private-key"
	sshKeyFlagShorthandConstant   = "i"
	sshKeyFlagUsageConstant       = "Path to the ssh private key used for fetch authentication (defaults to ~/.ssh/id_rsa)"
	defaultSSHKeyRelativeConstant = ".ssh/id_rsa"

	backendMissingMessageConstant            = "repository backend not configured"
	homeDirectoryErrorTemplateConstant       = "unable to resolve home directory: %w"
	privateKeyStatErrorTemplateConstant      = "unable to read ssh private key %s: %w"
	privateKeyNotAFileTemplateConstant       = "the ssh private key path is not a file: %s"
	reposDirectoryStatErrorTemplateConstant  = "unable to read repositories directory %s: %w"
	reposDirectoryNotADirTemplateConstant    = "the repositories directory is not a directory: %s"
	workingDirectoryErrorTemplateConstant    = "unable to resolve working directory: %w"
	scanFailedLogMessageConstant             = "scan failed"
	scanRecordCountLogFieldConstant          = "classified_branches"
	scanPreparedLogMessageConstant           = "scan prepared"
	scanCompletedLogMessageConstant          = "scan completed"
	loggerFieldPrivateKeyConstant            = "ssh_private_key"
	loggerFieldReposDirectoryConstant        = "repos_directory"
	homeDirectoryProviderDefaultErrTemplate = "unable to resolve default ssh private key: %w"
	reposDirectoryArgumentsMaximumConstant  = 1
	reposDirectoryArgumentPositionConstant  = 0
	emptyStringConstant                     = ""
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the scan configuration resolved by the CLI.
type ConfigurationProvider func() CommandConfiguration

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Backend               RepositoryBackend
	HomeDirectoryProvider HomeDirectoryProvider
}

// Build constructs the cobra command that runs the backup audit.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	if builder.Backend == nil {
		return nil, errors.New(backendMissingMessageConstant)
	}

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		Args:  cobra.MaximumNArgs(reposDirectoryArgumentsMaximumConstant),
		RunE:  builder.run,
	}

	command.Flags().BoolP(verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)
	command.Flags().StringP(sshKeyFlagNameConstant, sshKeyFlagShorthandConstant, emptyStringConstant, sshKeyFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()

	if command.Flags().Changed(verboseFlagNameConstant) {
		verboseFlagValue, _ := command.Flags().GetBool(verboseFlagNameConstant)
		configuration.Verbose = verboseFlagValue
	}
	if command.Flags().Changed(sshKeyFlagNameConstant) {
		sshKeyFlagValue, _ := command.Flags().GetString(sshKeyFlagNameConstant)
		configuration.SSHPrivateKeyPath = sshKeyFlagValue
	}

	reposDirectory, directoryError := builder.resolveReposDirectory(arguments)
	if directoryError != nil {
		return directoryError
	}

	privateKeyPath, keyPathError := builder.resolvePrivateKeyPath(configuration.SSHPrivateKeyPath)
	if keyPathError != nil {
		return keyPathError
	}

	if preflightError := validatePreflight(privateKeyPath, reposDirectory); preflightError != nil {
		return preflightError
	}

	logger := builder.resolveLogger()
	logger.Info(
		scanPreparedLogMessageConstant,
		zap.String(loggerFieldReposDirectoryConstant, reposDirectory),
		zap.String(loggerFieldPrivateKeyConstant, privateKeyPath),
	)

	qualifier := NewRemoteQualifier(configuration.QualifyingPrefixes)
	syncer := NewRemoteSyncer(privateKeyPath, defaultFetchUsernameConstant)
	auditor := NewBranchAuditor(NewAncestryResolver())
	service := NewService(builder.Backend, qualifier, syncer, auditor, command.OutOrStdout(), logger)

	auditRecords, runError := service.Run(command.Context(), ScanOptions{
		ReposDirectory: reposDirectory,
		Verbose:        configuration.Verbose,
	})
	if runError != nil {
		logger.Error(scanFailedLogMessageConstant, zap.Error(runError))
		return runError
	}

	logger.Info(
		scanCompletedLogMessageConstant,
		zap.Int(scanRecordCountLogFieldConstant, len(auditRecords)),
	)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveReposDirectory(arguments []string) (string, error) {
	if len(arguments) > reposDirectoryArgumentPositionConstant {
		return arguments[reposDirectoryArgumentPositionConstant], nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return emptyStringConstant, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}
	return workingDirectory, nil
}

func (builder *CommandBuilder) resolvePrivateKeyPath(configuredPath string) (string, error) {
	homeDirectoryProvider := builder.HomeDirectoryProvider
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}

	if len(configuredPath) > 0 {
		expander := pathutils.NewHomeExpanderWithProvider(pathutils.HomeDirectoryProvider(homeDirectoryProvider))
		return expander.Expand(configuredPath), nil
	}

	homeDirectory, homeError := homeDirectoryProvider()
	if homeError != nil {
		return emptyStringConstant, fmt.Errorf(homeDirectoryProviderDefaultErrTemplate, homeError)
	}
	return filepath.Join(homeDirectory, defaultSSHKeyRelativeConstant), nil
}

// validatePreflight enforces the fatal pre-conditions: the private key must be an
// existing regular file and the repositories directory must be a readable
// directory. Either failure aborts the run before any per-entry output.
func validatePreflight(privateKeyPath string, reposDirectory string) error {
	keyInfo, keyStatError := os.Stat(privateKeyPath)
	if keyStatError != nil {
		return fmt.Errorf(privateKeyStatErrorTemplateConstant, privateKeyPath, keyStatError)
	}
	if !keyInfo.Mode().IsRegular() {
		return fmt.Errorf(privateKeyNotAFileTemplateConstant, privateKeyPath)
	}

	directoryInfo, directoryStatError := os.Stat(reposDirectory)
	if directoryStatError != nil {
		return fmt.Errorf(reposDirectoryStatErrorTemplateConstant, reposDirectory, directoryStatError)
	}
	if !directoryInfo.IsDir() {
		return fmt.Errorf(reposDirectoryNotADirTemplateConstant, reposDirectory)
	}

	return nil
}
