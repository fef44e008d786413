package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	defaultScanServiceURL = "https://scan.veritasproject.dev/v1"
	defaultInsightModel   = "gpt-5"
	defaultChain          = "ethereum"
	defaultTimeoutSec     = 30
)

// Chain is the immutable endpoint configuration for one network. It is
// constructed here and passed into the on-chain collector, never read from
// ambient global state.
type Chain struct {
	Name        string `yaml:"name" json:"name"`
	ChainID     int64  `yaml:"chain_id" json:"chain_id"`
	RPCURL      string `yaml:"rpc_url" json:"rpc_url"`
	ExplorerURL string `yaml:"explorer_url" json:"explorer_url"`
}

// Config is the application configuration, read from ~/.veritas/config.yaml
// or created with defaults on first run.
type Config struct {
	DefaultChain   string  `yaml:"default_chain"`
	Chains         []Chain `yaml:"chains"`
	ScanServiceURL string  `yaml:"scan_service_url"`
	InsightModel   string  `yaml:"insight_model"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// ChainByName returns the named chain config, or false when not configured.
func (c *Config) ChainByName(name string) (Chain, bool) {
	for _, ch := range c.Chains {
		if strings.EqualFold(ch.Name, name) {
			return ch, true
		}
	}
	return Chain{}, false
}

func getDefaultConfig() *Config {
	return &Config{
		DefaultChain: defaultChain,
		Chains: []Chain{
			{Name: "ethereum", ChainID: 1, RPCURL: "https://eth.llamarpc.com", ExplorerURL: "https://api.etherscan.io/api"},
			{Name: "polygon", ChainID: 137, RPCURL: "https://polygon.llamarpc.com", ExplorerURL: "https://api.polygonscan.com/api"},
			{Name: "bsc", ChainID: 56, RPCURL: "https://bsc.llamarpc.com", ExplorerURL: "https://api.bscscan.com/api"},
		},
		ScanServiceURL: defaultScanServiceURL,
		InsightModel:   defaultInsightModel,
		TimeoutSeconds: defaultTimeoutSec,
	}
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	// Older config files may predate some fields.
	if c.DefaultChain == "" {
		c.DefaultChain = defaultChain
	}
	if c.InsightModel == "" {
		c.InsightModel = defaultInsightModel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSec
	}

	return &c, nil
}

// GetOrCreateHomeDir returns the app home directory for the current user.
// The created flag is set when the directory did not exist.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
