package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shrub/internal/paths"
	"github.com/mesh-intelligence/shrub/pkg/store"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyCacheSize = "cache_size"
	cfgKeyLogLevel  = "log.level"
	cfgKeyLogFormat = "log.format"
	cfgKeyLogSource = "log.add_source"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# shrub configuration

backend: sqlite

# Data directory (optional; overridable by --data-dir and SHRUB_DATA_DIR)
# data_dir:

# Number of item types kept in memory (0 means the default)
cache_size: 0

log:
  level: warn    # debug, info, warn, error
  format: text   # text, json
  add_source: false
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, sysErr("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, sysErr("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, store.BackendSQLite)
	v.SetDefault(cfgKeyCacheSize, 0)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig builds the store configuration from flags, config and env.
func (a *app) storeConfig() (store.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return store.Config{}, sysErr("resolve data dir: %w", err)
	}
	return store.Config{
		Backend:   a.config.GetString(cfgKeyBackend),
		DataDir:   dataDir,
		CacheSize: a.config.GetInt(cfgKeyCacheSize),
	}, nil
}
