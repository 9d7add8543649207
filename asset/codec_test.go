package asset

import (
	"testing"

	"github.com/iov-one/pact/pacttest"
)

func TestCodecMatchesSchema(t *testing.T) {
	pacttest.AssertSchema(t, "codec.proto", &Asset{})
}
