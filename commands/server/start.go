package server

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/pact/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log_level"
	flagConfig   = "config"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, cfg Config) (abci.Application, error)

// parseStartFlags loads the configuration file and applies the flags that
// were explicitly set on top of it.
func parseStartFlags(home string, args []string) (Config, error) {
	defaults := DefaultConfig()

	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	configPath := startFlags.String(flagConfig, filepath.Join(home, "config", ConfigFile), "node configuration file")
	bind := startFlags.String(flagBind, defaults.Bind, "address server listens on")
	debug := startFlags.Bool(flagDebug, defaults.Debug, "call stack returned on error")
	logLevel := startFlags.String(flagLogLevel, defaults.LogLevel, "log level: debug, info, error or none")
	if err := startFlags.Parse(args); err != nil {
		return Config{}, errors.Wrap(errors.ErrInput, err.Error())
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return cfg, err
	}
	startFlags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case flagBind:
			cfg.Bind = *bind
		case flagDebug:
			cfg.Debug = *debug
		case flagLogLevel:
			cfg.LogLevel = *logLevel
		}
	})
	return cfg, cfg.Validate()
}

// StartCmd initializes the application, and runs the ABCI server until the
// process receives SIGINT or SIGTERM.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Start(ctx, gen, logger, home, args)
}

// Start runs the ABCI server until the context is cancelled.
func Start(ctx context.Context, gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := parseStartFlags(home, args)
	if err != nil {
		return err
	}
	logger, err = cfg.Logger(logger)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, cfg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind, "releaser", cfg.Releaser.Kind)

	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot start server: %s", err)
	}

	<-ctx.Done()
	logger.Info("Stopping ABCI app")
	return svr.Stop()
}
