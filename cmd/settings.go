/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	flash "github.com/allbin/fluidnc-flash"
	"github.com/allbin/fluidnc-flash/internal/logger"
)

// settings is the merged view of flags, environment and config file
type settings struct {
	Env      string
	Port     string
	NoErase  bool
	NoFS     bool
	DataDir  string
	PIO      string
	Baud     int
	LogLevel string
	LogJSON  bool
	Prefer   []string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("fluidnc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", flash.DefaultEnvironment)
	v.SetDefault("data-dir", flash.DefaultDataDir)
	v.SetDefault("baud", flash.DefaultMonitorBaud)
	v.SetDefault("log-level", "warn")
	v.SetDefault("prefer", flash.PreferredKeywords)
	return v
}

// readConfig loads path, or ./.fluidnc-flash.yaml when path is empty.
// Only an explicitly named file is required to exist.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".fluidnc-flash")
		v.SetConfigType("yaml")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && path == "" && errors.As(err, &notFound) {
		return nil
	}
	return err
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		Env:      v.GetString("env"),
		Port:     v.GetString("port"),
		NoErase:  v.GetBool("no-erase"),
		NoFS:     v.GetBool("no-fs"),
		DataDir:  v.GetString("data-dir"),
		PIO:      v.GetString("pio"),
		Baud:     v.GetInt("baud"),
		LogLevel: v.GetString("log-level"),
		LogJSON:  v.GetBool("log-json"),
		Prefer:   v.GetStringSlice("prefer"),
	}
}

// config converts the settings into an immutable run configuration
func (s settings) config() (flash.Config, error) {
	return flash.NewConfig(
		flash.WithEnvironment(s.Env),
		flash.WithPort(s.Port),
		flash.WithSkipErase(s.NoErase),
		flash.WithSkipFilesystem(s.NoFS),
		flash.WithDataDir(s.DataDir),
	)
}

func (s settings) logger(stdio flash.Stdio) (*logger.Logger, error) {
	return logger.New(logger.Options{Level: s.LogLevel, JSON: s.LogJSON, Writer: stdio.Err})
}

// Seams replaced in tests
var (
	locatePIO   = flash.LocatePlatformIO
	newExecutor = func(log *logger.Logger) flash.Executor {
		return flash.NewExecExecutor().WithLogger(log)
	}
)

func (s settings) toolchain(log *logger.Logger) (*flash.Toolchain, error) {
	path, err := locatePIO(s.PIO)
	if err != nil {
		return nil, err
	}
	log.With("pio", path).Debug("located PlatformIO")
	return flash.NewToolchain(path, newExecutor(log)).WithLogger(log), nil
}

// resolver picks ports from lister, prompting on stdio when needed.
// An empty Prefer keeps flash.PreferredKeywords.
func (s settings) resolver(lister flash.DeviceLister, stdio flash.Stdio, report *flash.Reporter, log *logger.Logger) *flash.Resolver {
	opts := []flash.ResolverOption{
		flash.WithInput(stdio.In),
		flash.WithReporter(report),
		flash.WithResolverLogger(log),
	}
	if len(s.Prefer) > 0 {
		opts = append(opts, flash.WithKeywords(s.Prefer...))
	}
	return flash.NewResolver(lister, opts...)
}

func stdioOf(cmd *cobra.Command) flash.Stdio {
	return flash.Stdio{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}
