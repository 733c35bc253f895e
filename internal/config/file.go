package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName is used for the config and data directories.
const AppName = "tasksync"

// DefaultFilePath returns $XDG_CONFIG_HOME/tasksync/config.yaml.
func DefaultFilePath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFile merges a YAML config file over c. A missing file is not an error.
// Keys absent from the file keep their current values.
func (c *RuntimeConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	c.Auth.APIURL = strings.TrimRight(c.Auth.APIURL, "/")
	return nil
}

// WriteFile saves c as YAML, creating the directory if needed.
func (c *RuntimeConfig) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
