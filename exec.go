/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/meta"
	"github.com/cookieY/sqlx"
	"github.com/sirupsen/logrus"
)

var timeType = reflect.TypeOf(time.Time{})

func trace(d *dialect.Dialect, query string, args []any) {
	logrus.WithFields(logrus.Fields{
		"dialect": d.Name,
		"sql":     query,
		"args":    args,
	}).Debug("execute sql")
}

func selectContext(ctx context.Context, q sqlx.QueryerContext, d *dialect.Dialect, dest any, query string, args ...any) error {
	trace(d, query, args)
	return d.ConvertError(sqlx.SelectContext(ctx, q, dest, query, args...), "", query)
}

func getContext(ctx context.Context, q sqlx.QueryerContext, d *dialect.Dialect, dest any, query string, args ...any) error {
	trace(d, query, args)
	return d.ConvertError(sqlx.GetContext(ctx, q, dest, query, args...), "", query)
}

func execContext(ctx context.Context, e sqlx.ExecerContext, d *dialect.Dialect, query string, args ...any) (sql.Result, error) {
	trace(d, query, args)
	r, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, d.ConvertError(err, "", query)
	}
	return r, nil
}

func paginate(ctx context.Context, ext sqlx.ExtContext, d *dialect.Dialect, dest any, sel *dialect.RowSelection, query string, args ...any) error {
	limited, limitArgs := d.LimitSQL(query, sel)
	return selectContext(ctx, ext, d, dest, ext.Rebind(limited), d.BindLimitArgs(args, limitArgs)...)
}

func count(ctx context.Context, ext sqlx.ExtContext, d *dialect.Dialect, query string, args ...any) (int64, error) {
	var n int64
	err := getContext(ctx, ext, d, &n, ext.Rebind(dialect.CountSQL(query)), args...)
	return n, err
}

func lockForUpdate(d *dialect.Dialect, query string, sel *dialect.RowSelection, mode dialect.LockMode, timeout int, aliases string) (string, error) {
	if !mode.Pessimistic() {
		return query, nil
	}
	if d.UseFollowOnLocking(query, sel) {
		return "", fmt.Errorf("%w: %s", ErrFollowOnLocking, query)
	}
	return query + d.ForUpdate(mode, timeout, aliases), nil
}

// insertSQL named insert of the columns of an entity. Identity columns take
// the dialect's insert value or are left out. key is the identity column
// whose value the insert has to report back.
func insertSQL(d *dialect.Dialect, table string, cols []*meta.Column) (query, key string, err error) {
	var names, values, identity []string
	for _, c := range cols {
		if c.Ignore {
			continue
		}
		if c.Identity {
			identity = append(identity, c.ColumnName)
			if d.Identity != nil && d.Identity.InsertString != "" {
				names = append(names, d.SQLNameFunc(c.ColumnName))
				values = append(values, d.Identity.InsertString)
			}
			continue
		}
		names = append(names, d.SQLNameFunc(c.ColumnName))
		values = append(values, ":"+c.ColumnName)
	}
	if len(identity) > 0 {
		keys, err := d.Identity.GeneratedKeys(identity)
		if err != nil {
			return "", "", err
		}
		key = keys[0]
	}
	query = "insert into " + table + " (" + strings.Join(names, ",") + ") values (" + strings.Join(values, ",") + ")"
	return query, key, nil
}

// insert writes entity into table and returns the generated key, 0 when the
// entity has no identity column or keys are not read back.
func insert(ctx context.Context, ext sqlx.ExtContext, d *dialect.Dialect, props dialect.Properties, table string, entity any) (int64, error) {
	cols, err := meta.ColumnsOf(entity, d.NameFunc)
	if err != nil {
		return 0, err
	}
	query, key, err := insertSQL(d, table, cols)
	if err != nil {
		return 0, err
	}
	bound, args, err := ext.BindNamed(query, entity)
	if err != nil {
		return 0, err
	}
	if key == "" || !d.Identity.KeysReturned || !props.Bool(dialect.PropUseGetGeneratedKeys, true) {
		_, err = execContext(ctx, ext, d, bound, args...)
		return 0, err
	}
	if d.Identity.Returning != "" {
		var id int64
		err = getContext(ctx, ext, d, &id, bound+fmt.Sprintf(d.Identity.Returning, d.SQLNameFunc(key)), args...)
		return id, err
	}
	r, err := execContext(ctx, ext, d, bound, args...)
	if err != nil {
		return 0, err
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, d.ConvertError(err, "read generated key "+key, bound)
	}
	return id, nil
}

// bindRow binds one batch row: maps and structs by name, []any positionally,
// anything else as the single argument.
func bindRow(ext sqlx.ExtContext, query string, row any) (string, []any, error) {
	if isNamedArg(row) {
		return ext.BindNamed(query, row)
	}
	if args, ok := row.([]any); ok {
		return ext.Rebind(query), args, nil
	}
	return ext.Rebind(query), []any{row}, nil
}

func templateData(args []any) any {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	}
	return args
}

// isNamedArg map[string]... and structs other than time.Time bind by name
func isNamedArg(arg any) bool {
	if arg == nil {
		return false
	}
	if _, ok := arg.(driver.Valuer); ok {
		return false
	}
	t := reflect.TypeOf(arg)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map:
		return t.Key().Kind() == reflect.String
	case reflect.Struct:
		return t != timeType
	}
	return false
}
