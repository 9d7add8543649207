package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Validation of a message or a model reports every broken field at once.
// Each failure is created with Field and the failures are collected with
// Append, so that a caller can later pick the failures of one field with
// FieldErrors:
//
//	var errs error
//	errs = AppendField(errs, "Sender", party.Validate())
//	errs = AppendField(errs, "Asset", asset.Validate())
//	return errs

// Append clubs together all provided errors. Nil values are ignored and
// nested collections are flattened. No error gives nil, a single error is
// returned unchanged.
func Append(errs ...error) error {
	var all multiErr
	for _, e := range errs {
		switch e := e.(type) {
		case multiErr:
			all = append(all, e...)
		default:
			if !isNilErr(e) {
				all = append(all, e)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

// AppendField adds the failure of a single field to the collection. A nil
// failure leaves the collection unchanged.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

// Field labels err as the failure of the named field. Use Go names, with dot
// notation for nested values and the element index for lists, for example
// Asset.Name or Owners.2. Field returns nil for a nil error.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: fieldName, desc: description, parent: err}
}

// FieldErrors returns the failures recorded for the named field anywhere in
// err, following both wrapping and collections.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	switch e := err.(type) {
	case *fieldError:
		if e.field == fieldName {
			return []error{e}
		}
		return FieldErrors(e.parent, fieldName)
	case unpacker:
		var found []error
		for _, inner := range e.Unpack() {
			found = append(found, FieldErrors(inner, fieldName)...)
		}
		return found
	case causer:
		return FieldErrors(e.Cause(), fieldName)
	default:
		return nil
	}
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

// multiErr is a flat collection. The first error decides the ABCI code.
type multiErr []error

var (
	_ unpacker = multiErr(nil)
	_ coder    = multiErr(nil)
)

func (m multiErr) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(m))
	for _, err := range m {
		fmt.Fprintf(&b, "\n\t* %s", err)
	}
	b.WriteString("\n")
	return b.String()
}

func (m multiErr) Unpack() []error { return m }

func (m multiErr) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}
