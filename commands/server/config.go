package server

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/pact/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration file, relative to the
// config directory of the home directory.
const ConfigFile = "pactd.toml"

// Releaser kinds.
const (
	ReleaserLog   = "log"
	ReleaserRedis = "redis"
)

// Config is the node configuration. It is local to the node and never part
// of the shared state.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns the full error stack in responses.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, error, none.
	LogLevel string `toml:"log_level"`
	// DBPath is the application database, relative to the home directory
	// when not absolute. Empty means in memory.
	DBPath string `toml:"db_path"`

	Releaser ReleaserConfig `toml:"releaser"`
}

// ReleaserConfig selects where settled releases are handed over to.
type ReleaserConfig struct {
	Kind string `toml:"kind"`
	// Timeout limits a single dispatch run after a commit.
	Timeout duration `toml:"timeout"`
	// CursorPath is the node local database holding the delivery
	// progress, relative to the home directory when not absolute.
	CursorPath string `toml:"cursor_path"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds connection parameters for the Redis releaser.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Stream   string `toml:"stream"`
}

// duration is a time.Duration read from a "5s" style string.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
		DBPath:   filepath.Join("data", "pact.db"),
		Releaser: ReleaserConfig{
			Kind:       ReleaserLog,
			Timeout:    duration{5 * time.Second},
			CursorPath: filepath.Join("data", "outbox.db"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Stream: "pact:releases",
			},
		},
	}
}

// LoadConfig reads the TOML file at path on top of the defaults and applies
// PACT_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrConfig, "cannot parse %s: %s", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, errors.Wrapf(errors.ErrConfig, "cannot read %s: %s", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnvOverrides lets operators inject secrets at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PACT_RELEASER"); v != "" {
		cfg.Releaser.Kind = v
	}
	if v := os.Getenv("PACT_REDIS_ADDR"); v != "" {
		cfg.Releaser.Redis.Addr = v
	}
	if v := os.Getenv("PACT_REDIS_PASSWORD"); v != "" {
		cfg.Releaser.Redis.Password = v
	}
	if v := os.Getenv("PACT_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.ErrConfig, "PACT_REDIS_DB: %s", err)
		}
		cfg.Releaser.Redis.DB = n
	}
	return nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	var err error
	if c.Bind == "" {
		err = errors.AppendField(err, "Bind", errors.ErrEmpty)
	}
	if _, lerr := log.AllowLevel(c.LogLevel); lerr != nil {
		err = errors.AppendField(err, "LogLevel", errors.Wrap(errors.ErrConfig, lerr.Error()))
	}
	switch c.Releaser.Kind {
	case ReleaserLog:
	case ReleaserRedis:
		if c.Releaser.Redis.Addr == "" {
			err = errors.AppendField(err, "Releaser.Redis.Addr", errors.ErrEmpty)
		}
	default:
		err = errors.AppendField(err, "Releaser.Kind",
			errors.Wrapf(errors.ErrConfig, "unknown releaser %q", c.Releaser.Kind))
	}
	if c.Releaser.Timeout.Duration <= 0 {
		err = errors.AppendField(err, "Releaser.Timeout", errors.Wrap(errors.ErrConfig, "must be positive"))
	}
	return err
}

// Logger applies the configured log level to the logger.
func (c Config) Logger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfig, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// Resolve returns path made absolute against the home directory. An empty
// path stays empty.
func Resolve(home, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}

// WriteConfig writes the configuration as TOML.
func WriteConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot create config directory: %s", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot write %s: %s", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot encode config: %s", err)
	}
	return nil
}
