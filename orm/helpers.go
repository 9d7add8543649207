package orm

import (
	"github.com/iov-one/pact/errors"
)

// ValidateSequence returns an error if this is not an 8-byte
// value as produced by Sequence.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key greater than all keys with the prefix, or nil when no such
// key exists (prefix made of 0xFF only).
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
