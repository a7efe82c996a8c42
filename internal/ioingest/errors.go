package ioingest

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/usnistgov/NED/pkg/errcode"
)

func FileReadError(path string, err error) error {
	msg := "Cannot read data file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestFileReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read data file %s: %w",
			fn, path, err),
	}
}

func FileParseError(path string, err error) error {
	msg := "Cannot parse data file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestFileParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse data file %s: %w",
			fn, path, err),
	}
}

func CancelledError(err error) error {
	msg := "Ingestion was cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: ingestion cancelled: %w", fn, err),
	}
}

// Record-level failures are plain error values: they are collected in
// the run report, never printed through the fatal-error path.

func missingFieldError(field string) error {
	return fmt.Errorf("required field %q is missing or empty", field)
}

func unresolvedRefError(kind, key string) error {
	return fmt.Errorf("%s %q does not resolve to an existing record",
		kind, key)
}

func vocabularyError(field, val string) error {
	return fmt.Errorf("value %q is not allowed for field %q", val, field)
}
