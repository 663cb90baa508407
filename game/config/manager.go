package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// BuiltinName is the name under which the compiled-in configuration is served
const BuiltinName = "classic"

// Manager handles game configuration loading and caching. A missing config
// directory is not an error: the built-in configuration is then the only one.
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	info, err := os.Stat(configDir)
	switch {
	case os.IsNotExist(err):
		log.WithField("dir", configDir).Warn("config directory does not exist, using built-in configuration")
	case err != nil:
		return nil, fmt.Errorf("failed to stat config directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("config path is not a directory: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name. The name is the file name with or
// without the .json extension. BuiltinName resolves to the built-in
// configuration unless a file of that name shadows it.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if errors.Is(err, ErrConfigNotFound) && name == BuiltinName {
		config, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// readConfig parses and validates one file from the config directory
func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	config, err := engine.LoadGameConfig(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}

	return config, nil
}

// ListConfigs returns information about all available configurations sorted
// by config id. Invalid files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	var names []string

	entries, err := os.ReadDir(m.configDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	builtinShadowed := false
	for _, name := range names {
		if name == BuiltinName {
			builtinShadowed = true
		}
	}
	if !builtinShadowed {
		names = append(names, BuiltinName)
	}
	sort.Strings(names)

	configs := make([]*service.ConfigInfo, 0, len(names))
	for _, name := range names {
		config, err := m.LoadConfig(name)
		if err != nil {
			log.WithError(err).WithField("config", name).Debug("skipping invalid config")
			continue
		}

		filename := name + ".json"
		if name == BuiltinName && !builtinShadowed {
			filename = ""
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    filename,
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Seed:        config.Seed,
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig picks classic.json, or the built-in configuration when
// that file is missing or invalid
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(BuiltinName)
	if err != nil {
		log.WithError(err).Warn("failed to load default config, using built-in configuration")
		config = engine.DefaultConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}
