package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/commands/server"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/notify"
	"github.com/iov-one/pact/x/escrow"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// GenInitOptions produces the default escrow configuration and, when
// owners are given as arguments, one empty coordinator owned by them.
//
//	pactd init alice bob
func GenInitOptions(args []string) (json.RawMessage, error) {
	conf := escrow.DefaultConfiguration()
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"escrow": conf,
		},
	}

	if len(args) > 0 {
		owners := make([]pact.Party, 0, len(args))
		for _, a := range args {
			p := pact.Party(strings.TrimSpace(a))
			if err := p.Validate(); err != nil {
				return nil, errors.Wrapf(err, "owner %q", a)
			}
			owners = append(owners, p)
		}
		state["escrow"] = []interface{}{
			map[string]interface{}{"owners": owners},
		}
	} else {
		state["escrow"] = []interface{}{}
	}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "cannot serialize app state: %s", err)
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, cfg server.Config) (abci.Application, error) {
	releaser, err := newReleaser(logger, cfg.Releaser)
	if err != nil {
		return nil, err
	}
	cursor, err := CommitKVStore(server.Resolve(home, cfg.Releaser.CursorPath))
	if err != nil {
		return nil, err
	}
	if err := cursor.WithHistory(2).LoadLatestVersion(); err != nil {
		return nil, err
	}

	stack := Stack(escrow.NewController())
	application, err := Application(Name, stack, TxCodec().Decode, server.Resolve(home, cfg.DBPath), cfg.Debug)
	if err != nil {
		return nil, err
	}
	announcer := NewOutboxAnnouncer(cursor, releaser, cfg.Releaser.Timeout.Duration)
	application.WithAnnouncer(announcer).WithLogger(logger)
	return application, nil
}

func newReleaser(logger log.Logger, cfg server.ReleaserConfig) (escrow.Releaser, error) {
	switch cfg.Kind {
	case server.ReleaserLog:
		return notify.NewLogReleaser(logger), nil
	case server.ReleaserRedis:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout.Duration)
		defer cancel()
		return notify.NewRedisReleaser(ctx, notify.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Stream:   cfg.Redis.Stream,
		})
	default:
		return nil, errors.Wrap(errors.ErrConfig, fmt.Sprintf("unknown releaser %q", cfg.Kind))
	}
}
