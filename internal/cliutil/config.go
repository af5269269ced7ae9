package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Config represents the fsl configuration from fsl.yaml.
type Config struct {
	// Top-level convenience fields
	Schema     string `mapstructure:"schema"`
	SchemasDir string `mapstructure:"schemas_dir"`
	Output     string `mapstructure:"output"`

	// Per-command configuration
	Typescript TypescriptConfig `mapstructure:"typescript"`
	Serve      ServeConfig      `mapstructure:"serve"`
	Doctor     DoctorConfig     `mapstructure:"doctor"`
}

// TypescriptConfig holds `fsl typescript` settings.
type TypescriptConfig struct {
	SchemasDir string `mapstructure:"schemas_dir"`
	Output     string `mapstructure:"output"`
}

// ServeConfig holds `fsl serve` settings.
type ServeConfig struct {
	SchemasDir string `mapstructure:"schemas_dir"`
	Addr       string `mapstructure:"addr"`
}

// DoctorConfig holds `fsl doctor` settings.
type DoctorConfig struct {
	SchemasDir string `mapstructure:"schemas_dir"`
	Verbose    bool   `mapstructure:"verbose"`
	Token      string `mapstructure:"token"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("FSL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	// Top-level defaults
	v.SetDefault("schema", "")
	v.SetDefault("schemas_dir", "schemas")
	v.SetDefault("output", "")

	// Typescript defaults
	v.SetDefault("typescript.schemas_dir", "")
	v.SetDefault("typescript.output", "")

	// Serve defaults
	v.SetDefault("serve.schemas_dir", "")
	v.SetDefault("serve.addr", ":8085")

	// Doctor defaults
	v.SetDefault("doctor.schemas_dir", "")
	v.SetDefault("doctor.verbose", false)
	v.SetDefault("doctor.token", "")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for fsl.yaml or fsl.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Auto-discovery: walk up to .git or maxWalkDepth
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		// Try fsl.yaml then fsl.yml
		for _, name := range []string{"fsl.yaml", "fsl.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break // Stop at repo root
		}

		// Move up
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// ResolvedSchemasDir returns the effective schemas_dir for a command,
// with command-specific override taking precedence over top-level.
func (c *Config) ResolvedSchemasDir(commandDir string) string {
	if commandDir != "" {
		return commandDir
	}
	return c.SchemasDir
}

// ResolvedOutput returns the effective output path for a command, with
// command-specific override taking precedence over top-level.
func (c *Config) ResolvedOutput(commandOutput string) string {
	if commandOutput != "" {
		return commandOutput
	}
	return c.Output
}
