package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the thresholds file under the app home dir.
	ConfigFileName = "config.yaml"

	dirMode  = 0700
	fileMode = 0600
)

// Config is the run configuration: the six rating thresholds the scoring
// rubric and grade classifier derive their bands from.
type Config struct {
	Thresholds scoring.ScoreThresholds `yaml:"thresholds"`
}

// Save writes the config to the given path.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// ReadOrCreate reads the config file, creating it with default thresholds
// on first run. The returned thresholds are not validated here; the scorer
// validates them and fails the run before any record is processed.
func ReadOrCreate(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(path, &Config{Thresholds: scoring.DefaultThresholds()}); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	return &c, nil
}

// GetOrCreateHomeDir returns the app home directory under the user home,
// creating it on first run.
func GetOrCreateHomeDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("name cannot be empty")
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", errors.Wrapf(err, "failed to create dir: %s", dir)
		}
	}
	return dir, nil
}
