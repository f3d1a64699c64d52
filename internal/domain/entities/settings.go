package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRegistry   = "https://registry.npmjs.org"
	DefaultBatchLimit = 50
	DefaultLLMModel   = "qwen2.5:14b"
)

// DefaultLanguages are the locale codes maintained for every fleet
// project when the settings file does not override them.
//
//nolint:gochecknoglobals // fixed language table
var DefaultLanguages = []string{
	"de", "es", "fr", "it", "pt", "nl", "pl", "ru",
	"ja", "zh", "ko", "ar", "tr", "sv", "fi",
}

// Settings is the top-level configuration for pushfleet.
type Settings struct {
	// Registry is the package registry queried for latest versions.
	Registry string `yaml:"registry"`

	// Scope is the private namespace prefix (e.g. "@acme") whose
	// dependencies the reconciler keeps in sync.
	Scope string `yaml:"scope"`

	// Projects is the default fleet, as "path" or "path:delaySeconds"
	// entries, used when no projects file or inline list is given.
	Projects []string `yaml:"projects"`

	Translation TranslationSettings `yaml:"translation"`
}

// TranslationSettings configures the localization backends.
type TranslationSettings struct {
	Languages  []string `yaml:"languages"`
	LLMHost    string   `yaml:"llm_host"`
	LLMPort    int      `yaml:"llm_port"`
	LLMModel   string   `yaml:"llm_model"`
	DeepLKey   string   `yaml:"deepl_api_key"` // inline, ${ENV_VAR}, or file path
	Endpoint   string   `yaml:"endpoint"`
	BatchLimit int      `yaml:"batch_limit"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving secret file paths, and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Translation.DeepLKey = resolveSecret(settings.Translation.DeepLKey)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// DefaultSettings returns settings with every default applied, for runs
// without a config file.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

func (s *Settings) applyDefaults() {
	if s.Registry == "" {
		s.Registry = DefaultRegistry
	}
	if len(s.Translation.Languages) == 0 {
		s.Translation.Languages = DefaultLanguages
	}
	if s.Translation.BatchLimit <= 0 {
		s.Translation.BatchLimit = DefaultBatchLimit
	}
	if s.Translation.LLMModel == "" {
		s.Translation.LLMModel = DefaultLLMModel
	}
}

func (s *Settings) validate() error {
	if s.Scope != "" && !strings.HasPrefix(s.Scope, "@") {
		return fmt.Errorf("scope %q must start with '@'", s.Scope)
	}
	if s.Translation.BatchLimit < 1 {
		return errors.New("translation.batch_limit must be at least 1")
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pushfleet.yaml",
		".pushfleet.yml",
		"pushfleet.yaml",
		"pushfleet.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveSecret expands environment variable references (${VAR}) and, if
// the resulting string is a path to an existing file, reads the secret
// from the file.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
