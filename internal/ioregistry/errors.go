package ioregistry

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/usnistgov/NED/pkg/errcode"
)

func srcName(path string) string {
	if path == "" {
		return "embedded NISTIR label map"
	}
	return path
}

func UnavailableError(path string, err error) error {
	msg := "Cannot read taxonomy labels from <em>%s</em>"
	vars := []any{srcName(path)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegistryUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read labels file %s: %w",
			fn, path, err),
	}
}

func ParseError(path string, err error) error {
	msg := "Taxonomy labels in <em>%s</em> are not a valid JSON map"
	vars := []any{srcName(path)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegistryParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse labels %s: %w",
			fn, srcName(path), err),
	}
}

func ClosureError(path string, err error) error {
	msg := "Taxonomy labels in <em>%s</em> are inconsistent"
	vars := []any{srcName(path)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegistryClosureError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid label map %s: %w",
			fn, srcName(path), err),
	}
}
