// Package config loads the defaults shared by the absrsa commands from an
// optional YAML file and the command line flags.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/logs"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/pathutils"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/prime"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/rsa"
)

// GlobalConfigDirectory is a static path where configuration may be loaded
// from when no --config flag is given and the working directory has none.
const GlobalConfigDirectory = "/etc/absrsa/"

// Config keys, which double as flag names.
const (
	KeyBits    = "bits"
	KeyRounds  = "rounds"
	KeyMaxBits = "max-bits"
	KeyKeyFile = "key-file"
)

// DefaultBits is the key size used when neither a flag nor the config file
// sets one.
const DefaultBits = 1024

// Config holds the settings common to the key generation and transform
// commands.
type Config struct {
	// Bits is the requested key size.
	Bits int
	// Rounds is the number of Miller-Rabin rounds per prime candidate.
	Rounds int
	// MaxBits is the largest key size keygen accepts.
	MaxBits int
	// KeyFile is the path of a YAML key file, with ~ expanded.
	KeyFile string
}

// Load reads the config file at configPath, or absrsa.yaml from the working
// directory or GlobalConfigDirectory when configPath is empty. A missing file
// is not an error. Flags in fs that were set on the command line take
// precedence over the file, which takes precedence over flag defaults.
func Load(ctx context.Context, configPath string, fs *pflag.FlagSet) (*Config, error) {
	log := klog.FromContext(ctx).WithName("config")
	v := viper.New()
	v.SetDefault(KeyBits, DefaultBits)
	v.SetDefault(KeyRounds, prime.DefaultRounds)
	v.SetDefault(KeyMaxBits, rsa.MaxKeyBits)

	if configPath != "" {
		v.SetConfigFile(pathutils.ExpandHome(configPath))
	} else {
		currentWorkingDirectory, err := os.Getwd()
		// Ignore any errors silently, but only search the
		// current working directory if we can resolve it.
		if err == nil {
			v.AddConfigPath(currentWorkingDirectory)
		}
		v.AddConfigPath(GlobalConfigDirectory)
		v.SetConfigName("absrsa")
		v.SetConfigType("yaml")
	}

	if fs != nil {
		for _, key := range []string{KeyBits, KeyRounds, KeyMaxBits, KeyKeyFile} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", key, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err == nil {
		log.V(logs.Debug).Info("Using config file", "path", v.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		// Not having a configuration file is the usual case.
		log.V(logs.Debug).Info("Not using config file")
	} else {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		Bits:    v.GetInt(KeyBits),
		Rounds:  v.GetInt(KeyRounds),
		MaxBits: v.GetInt(KeyMaxBits),
		KeyFile: pathutils.ExpandHome(v.GetString(KeyKeyFile)),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.MaxBits <= 0 {
		result = multierror.Append(result, fmt.Errorf("max-bits must be positive, got %d", c.MaxBits))
	}

	if c.Bits < 0 {
		result = multierror.Append(result, fmt.Errorf("bits cannot be negative, got %d", c.Bits))
	}

	if c.Rounds < 0 {
		result = multierror.Append(result, fmt.Errorf("rounds cannot be negative, got %d", c.Rounds))
	}

	return result.ErrorOrNil()
}

// Generator returns a key generator honouring the configured limits.
func (c *Config) Generator() *rsa.Generator {
	return &rsa.Generator{
		Rounds:  c.Rounds,
		MaxBits: c.MaxBits,
	}
}
