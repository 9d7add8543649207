package errors

import (
	"fmt"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain pact error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped pact error": {
			err:      Wrap(Wrap(ErrConsensus, "owner bob"), "execute"),
			wantLog:  "execute: owner bob: missing consensus",
			wantCode: ErrConsensus.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: SuccessABCICode,
		},
		"nil pact error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: SuccessABCICode,
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantLog:  "internal error",
			wantCode: internalABCICode,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantLog:  "stdlib error",
			wantCode: internalABCICode,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantLog:  "internal error",
			wantCode: internalABCICode,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantLog:  "panic",
			wantCode: ErrPanic.code,
		},
		"multi error uses first error code": {
			err:      Append(ErrInput, ErrState),
			wantCode: ErrInput.code,
			wantLog:  "2 errors occurred:\n\t* invalid input\n\t* invalid state\n",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.debug {
				// Debug messages contain a stack trace when
				// available, only check the prefix.
				if len(log) < len(tc.wantLog) || log[:len(tc.wantLog)] != tc.wantLog {
					t.Errorf("want %q log prefix, got %q", tc.wantLog, log)
				}
				return
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct should pass through panic error in debug mode")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("reduct should pass through pact error")
	}
	serr := fmt.Errorf("stdlib error")
	if err := Redact(serr, false); err == serr {
		t.Error("reduct must not pass through a stdlib error")
	}
}

func TestABCIError(t *testing.T) {
	if err := ABCIError(SuccessABCICode, ""); err != nil {
		t.Fatalf("success code is not an error: %v", err)
	}

	code, log := ABCIInfo(Wrap(ErrMismatch, "3 gold"), false)
	err := ABCIError(code, log)
	if !ErrMismatch.Is(err) {
		t.Fatalf("want mismatch error, got %v", err)
	}
	if err.Error() != "3 gold: asset mismatch: asset mismatch" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = ABCIError(internalABCICode, "internal error")
	for _, kind := range []*Error{ErrPanic, ErrInput, ErrNetwork} {
		if kind.Is(err) {
			t.Fatalf("internal error reported as %s", kind.desc)
		}
	}
}
