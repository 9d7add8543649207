package notify

import (
	"context"
	"encoding/hex"

	"github.com/iov-one/pact/orm"
	"github.com/iov-one/pact/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

// LogReleaser writes each release instruction to the logger.
type LogReleaser struct {
	logger log.Logger
}

var _ escrow.Releaser = (*LogReleaser)(nil)

// NewLogReleaser returns a releaser logging to the given logger.
func NewLogReleaser(logger log.Logger) *LogReleaser {
	return &LogReleaser{logger: logger.With("module", "notify")}
}

// Release never fails.
func (l *LogReleaser) Release(ctx context.Context, r *escrow.Release) error {
	l.logger.Info(r.Instruction(),
		"release", orm.DecodeSequence(r.ID),
		"escrow", hex.EncodeToString(r.Coordinator),
		"term", r.Term,
		"sender", r.Sender)
	return nil
}
