package scan

import "strings"

const (
	verboseConfigurationKeySuffixConstant            = ".verbose"
	sshPrivateKeyConfigurationKeySuffixConstant      = ".ssh_private_key"
	qualifyingPrefixesConfigurationKeySuffixConstant = ".qualifying_prefixes"
)

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	Verbose            bool     `mapstructure:"verbose"`
	SSHPrivateKeyPath  string   `mapstructure:"ssh_private_key"`
	QualifyingPrefixes []string `mapstructure:"qualifying_prefixes"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan
// command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Verbose:            false,
		SSHPrivateKeyPath:  "",
		QualifyingPrefixes: DefaultAcceptedURLPrefixes(),
	}
}

// DefaultConfigurationValues exposes the default values keyed under the provided
// configuration prefix for registration with the configuration loader.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + verboseConfigurationKeySuffixConstant:            defaults.Verbose,
		configurationPrefix + sshPrivateKeyConfigurationKeySuffixConstant:      defaults.SSHPrivateKeyPath,
		configurationPrefix + qualifyingPrefixesConfigurationKeySuffixConstant: defaults.QualifyingPrefixes,
	}
}

// sanitize trims whitespace and restores defaults for unset values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SSHPrivateKeyPath = strings.TrimSpace(configuration.SSHPrivateKeyPath)
	sanitized.QualifyingPrefixes = sanitizePrefixes(configuration.QualifyingPrefixes)
	return sanitized
}

func sanitizePrefixes(rawPrefixes []string) []string {
	sanitized := make([]string, 0, len(rawPrefixes))
	for index := range rawPrefixes {
		trimmed := strings.TrimSpace(rawPrefixes[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	if len(sanitized) == 0 {
		return DefaultAcceptedURLPrefixes()
	}
	return sanitized
}
