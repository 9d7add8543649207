package notify

import (
	"context"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
	"github.com/iov-one/pact/x/escrow"
	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream releases are appended to.
const DefaultStream = "pact:releases"

// streamMaxLen is the approximate maximum length of the stream, enforced
// via XADD MAXLEN ~.
const streamMaxLen int64 = 100000

// RedisConfig holds connection parameters for the Redis releaser.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

// streamAdder is the subset of the go-redis client used by RedisReleaser.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisReleaser appends every release to a Redis stream. The stream entry
// id doubles as the acknowledgement: a release is delivered once XADD
// returned without an error.
type RedisReleaser struct {
	rdb    streamAdder
	stream string
	closer func() error
}

var _ escrow.Releaser = (*RedisReleaser)(nil)

// NewRedisReleaser connects to Redis and verifies the connection.
func NewRedisReleaser(ctx context.Context, cfg RedisConfig) (*RedisReleaser, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(errors.ErrConfig, "redis %s: %s", cfg.Addr, err)
	}
	stream := cfg.Stream
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisReleaser{rdb: rdb, stream: stream, closer: rdb.Close}, nil
}

// Close closes the Redis connection.
func (rr *RedisReleaser) Close() error {
	if rr.closer == nil {
		return nil
	}
	return rr.closer()
}

// Entry is the JSON payload of a stream entry.
type Entry struct {
	Release     int64  `json:"release"`
	Escrow      string `json:"escrow"`
	Term        string `json:"term"`
	Sender      string `json:"sender"`
	Receiver    string `json:"receiver"`
	Asset       string `json:"asset"`
	Instruction string `json:"instruction"`
}

// NewEntry converts a release into its stream form.
func NewEntry(r *escrow.Release) Entry {
	e := Entry{
		Release:     orm.DecodeSequence(r.ID),
		Escrow:      hex.EncodeToString(r.Coordinator),
		Term:        r.Term,
		Sender:      r.Sender,
		Receiver:    r.Receiver,
		Instruction: r.Instruction(),
	}
	if r.Asset != nil {
		e.Asset = r.Asset.String()
	}
	return e
}

func (rr *RedisReleaser) Release(ctx context.Context, r *escrow.Release) error {
	payload, err := json.Marshal(NewEntry(r))
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	args := &redis.XAddArgs{
		Stream: rr.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"payload": payload,
		},
	}
	if err := rr.rdb.XAdd(ctx, args).Err(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "redis stream %s: %s", rr.stream, err)
	}
	return nil
}
