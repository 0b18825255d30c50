package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// An empty cfgFile searches the working directory and $HOME/.bookmeta.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	v := cm.v
	v.SetDefault("extraction.height_ratio", defaults.Extraction.HeightRatio)
	v.SetDefault("extraction.noise_tokens", defaults.Extraction.NoiseTokens)
	v.SetDefault("extraction.author_min_words", defaults.Extraction.AuthorMinWords)
	v.SetDefault("extraction.author_max_words", defaults.Extraction.AuthorMaxWords)
	v.SetDefault("extraction.default_layout", defaults.Extraction.DefaultLayout)
	v.SetDefault("ocr.provider", defaults.OCR.Provider)
	v.SetDefault("ocr.model", defaults.OCR.Model)
	v.SetDefault("ocr.languages", defaults.OCR.Languages)
	v.SetDefault("server.port", defaults.Server.Port)

	// Environment variables with BOOKMETA_ prefix, e.g. BOOKMETA_SERVER_PORT
	v.SetEnvPrefix("BOOKMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("bookmeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bookmeta")
	}

	// Config file is optional unless one was named explicitly
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	return nil
}

func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the path of the file in use, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("Config file changed", "file", e.Name, "op", e.Op.String())
		if err := cm.reload(); err != nil {
			slog.Error("Failed to reload config", "err", err)
		}
	})
	cm.v.WatchConfig()
}

func (cm *Manager) reload() error {
	cfg, err := cm.load()
	if err != nil {
		return err
	}

	cm.mu.Lock()
	cm.config = cfg
	callbacks := make([]func(*Config), len(cm.callbacks))
	copy(callbacks, cm.callbacks)
	cm.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# bookmeta configuration
# Every key can be overridden with a BOOKMETA_ environment variable,
# e.g. BOOKMETA_EXTRACTION_HEIGHT_RATIO=0.8 or BOOKMETA_OCR_PROVIDER=gemini

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
