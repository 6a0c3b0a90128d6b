package flash

import "strings"

const (
	DefaultEnvironment = "wifi"
	DefaultDataDir     = "FluidNC/data"
	DefaultMonitorBaud = 115200
)

// Config holds the settings of a single flashing run.
// It is built once by NewConfig and passed around by value.
type Config struct {
	Environment    string // PlatformIO environment, e.g. wifi or wifi_s3
	Port           string // Explicit upload port; empty means auto-detect
	SkipErase      bool
	SkipFilesystem bool
	DataDir        string // Filesystem image source, relative to the working directory
}

// Option is a functional option for configuring a run
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Environment: DefaultEnvironment,
		DataDir:     DefaultDataDir,
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithEnvironment sets the PlatformIO environment
func WithEnvironment(env string) Option {
	return func(c *Config) error {
		env = strings.TrimSpace(env)
		if env == "" {
			return ErrInvalidConfig
		}
		c.Environment = env
		return nil
	}
}

// WithPort pins the upload port and disables auto-detection
func WithPort(port string) Option {
	return func(c *Config) error {
		c.Port = strings.TrimSpace(port)
		return nil
	}
}

// WithSkipErase controls whether the flash is erased before upload
func WithSkipErase(skip bool) Option {
	return func(c *Config) error {
		c.SkipErase = skip
		return nil
	}
}

// WithSkipFilesystem controls whether the filesystem image is uploaded
func WithSkipFilesystem(skip bool) Option {
	return func(c *Config) error {
		c.SkipFilesystem = skip
		return nil
	}
}

// WithDataDir sets the directory holding the filesystem image contents
func WithDataDir(dir string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(dir) == "" {
			return ErrInvalidConfig
		}
		c.DataDir = dir
		return nil
	}
}
