package cmd

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/usnistgov/NED/pkg/errcode"
)

func EmptyDatabaseError(database string) error {
	msg := "Database <em>%s</em> has no tables. " +
		"Run <em>'ned init'</em> first"
	vars := []any{database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: database %s has no tables",
			fn, database),
	}
}
