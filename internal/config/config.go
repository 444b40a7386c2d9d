package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the harness.
type Config struct {
	// Project settings
	ProjectPath string
	SuitePath   string

	// Consumer connection settings
	Hosts            []string
	Port             int
	DialTimeout      time.Duration
	ReconnectTimeout time.Duration
	InitialRounds    int
	RetryDelay       time.Duration

	// Execution settings
	RunTimeout time.Duration

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	HistoryDBFile  string

	// NoSocket disables the consumer connection entirely (fallback only).
	NoSocket bool
	// Debug enables diagnostic chatter on stderr.
	Debug bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags.
type Flags struct {
	SuitePath  string
	NameFilter string
	Port       int
	Timeout    int // seconds
	NoSocket   bool
	Debug      bool
	Limit      int
}

// New creates a new Config with defaults.
func New() *Config {
	cfg := &Config{
		ProjectPath:      ".",
		SuitePath:        DefaultSuitePath,
		Port:             DefaultPort,
		DialTimeout:      DefaultDialTimeout,
		ReconnectTimeout: DefaultReconnectTimeout,
		InitialRounds:    DefaultInitialRounds,
		RetryDelay:       DefaultRetryDelay,
		RunTimeout:       DefaultRunTimeout,
		OutputJSONFile:   DefaultOutputJSONFile,
		OutputJSONDir:    DefaultOutputJSONDir,
		HistoryDBFile:    DefaultHistoryDBFile,
	}
	cfg.Hosts = make([]string, len(DefaultHosts))
	copy(cfg.Hosts, DefaultHosts)
	return cfg
}

// Load creates a config, applies .env / environment overrides, then flags.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.ApplyEnv()
	cfg.ApplyFlags(flags)
	return cfg
}

// ApplyEnv loads an optional .env file and applies QTB_* variables.
// A missing .env file is not an error.
func (c *Config) ApplyEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	_ = godotenv.Load(envPath)

	if hosts := os.Getenv("QTB_TUI_HOSTS"); hosts != "" {
		var parsed []string
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(h); h != "" {
				parsed = append(parsed, h)
			}
		}
		if len(parsed) > 0 {
			c.Hosts = parsed
		}
	}
	if port := os.Getenv("QTB_TUI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Port = p
		}
	}
	if os.Getenv("QTB_NO_SOCKET") != "" {
		c.NoSocket = true
	}
	if os.Getenv("QTB_DEBUG") != "" {
		c.Debug = true
	}
	if db := os.Getenv("QTB_HISTORY_DB"); db != "" {
		c.HistoryDBFile = db
	}
}

// ApplyFlags copies parsed command-line flags onto the config.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Port > 0 {
		c.Port = flags.Port
	}
	if flags.Timeout > 0 {
		c.RunTimeout = time.Duration(flags.Timeout) * time.Second
	}
	if flags.NoSocket {
		c.NoSocket = true
	}
	if flags.Debug {
		c.Debug = true
	}
}

// GetSuitePath returns the suite discovery root, using the flag if provided.
func (c *Config) GetSuitePath() string {
	if c.Flags.SuitePath != "" {
		if filepath.IsAbs(c.Flags.SuitePath) {
			return c.Flags.SuitePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SuitePath)
	}
	return filepath.Join(c.ProjectPath, c.SuitePath)
}

// GetOutputPath returns the absolute path of the session results file so run
// and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryDBPath returns the path of the run-history database.
func (c *Config) GetHistoryDBPath() string {
	if filepath.IsAbs(c.HistoryDBFile) {
		return c.HistoryDBFile
	}
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.HistoryDBFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
