package iorepo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/usnistgov/NED/pkg/errcode"
)

func GORMConnectionError(err error) error {
	msg := "Cannot open ORM session on the database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot open gorm session: %w", fn, err),
	}
}

func QueryError(kind, key string, err error) error {
	msg := "Cannot query %s <em>%s</em>"
	vars := []any{kind, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RepoQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot query %s %q: %w",
			fn, kind, key, err),
	}
}

func CreateError(kind, key string, err error) error {
	msg := "Cannot create %s <em>%s</em>"
	vars := []any{kind, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RepoCreateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create %s %q: %w",
			fn, kind, key, err),
	}
}

func UpdateError(kind, key string, err error) error {
	msg := "Cannot update %s <em>%s</em>"
	vars := []any{kind, key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RepoUpdateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot update %s %q: %w",
			fn, kind, key, err),
	}
}
