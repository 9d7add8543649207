package pact

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	bg := context.Background()

	_, ok := GetHeight(bg)
	assert.False(t, ok)

	ctx := WithHeight(bg, 42)
	h, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), h)

	assert.Panics(t, func() { WithHeight(ctx, 43) })
}

func TestContextChainID(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, "", GetChainID(bg))

	assert.Panics(t, func() { WithChainID(bg, "no") })

	ctx := WithChainID(bg, "pact-test-1")
	assert.Equal(t, "pact-test-1", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "pact-test-2") })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := WithLogInfo(WithLogger(bg, logger), "call", "deliver_tx")
	GetLogger(ctx).Info("hello", "escrow", 7)

	out := buf.String()
	assert.True(t, strings.Contains(out, "hello"), out)
	assert.True(t, strings.Contains(out, "call=deliver_tx"), out)
	assert.True(t, strings.Contains(out, "escrow=7"), out)
}
