/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/cookieY/sqlx"
)

// Tx 事务，由 DB.Batch 创建
type Tx struct {
	*sqlx.Tx
	db *DB
}

// DB 事务所属的数据库连接
func (t *Tx) DB() *DB {
	return t.db
}

func (t *Tx) Select(dest any, query string, args ...any) error {
	return t.SelectContext(context.Background(), dest, query, args...)
}

func (t *Tx) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return selectContext(ctx, t.Tx, t.db.driver, dest, query, args...)
}

func (t *Tx) Get(dest any, query string, args ...any) error {
	return t.GetContext(context.Background(), dest, query, args...)
}

func (t *Tx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return getContext(ctx, t.Tx, t.db.driver, dest, query, args...)
}

func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.ExecContext(context.Background(), query, args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return execContext(ctx, t.Tx, t.db.driver, query, args...)
}

func (t *Tx) SelectEx(dest any, tpl string, args ...any) error {
	return t.SelectExContext(context.Background(), dest, tpl, args...)
}

func (t *Tx) SelectExContext(ctx context.Context, dest any, tpl string, args ...any) error {
	query, bound, err := t.db.renderEx(t.Tx, tpl, args)
	if err != nil {
		return err
	}
	return selectContext(ctx, t.Tx, t.db.driver, dest, query, bound...)
}

func (t *Tx) GetEx(dest any, tpl string, args ...any) error {
	return t.GetExContext(context.Background(), dest, tpl, args...)
}

func (t *Tx) GetExContext(ctx context.Context, dest any, tpl string, args ...any) error {
	query, bound, err := t.db.renderEx(t.Tx, tpl, args)
	if err != nil {
		return err
	}
	return getContext(ctx, t.Tx, t.db.driver, dest, query, bound...)
}

func (t *Tx) ExecEx(tpl string, args ...any) (sql.Result, error) {
	return t.ExecExContext(context.Background(), tpl, args...)
}

func (t *Tx) ExecExContext(ctx context.Context, tpl string, args ...any) (sql.Result, error) {
	query, bound, err := t.db.renderEx(t.Tx, tpl, args)
	if err != nil {
		return nil, err
	}
	return execContext(ctx, t.Tx, t.db.driver, query, bound...)
}

func (t *Tx) NamedExecEx(tpl string, arg any) (sql.Result, error) {
	return t.ExecExContext(context.Background(), tpl, arg)
}

func (t *Tx) Paginate(ctx context.Context, dest any, sel *dialect.RowSelection, query string, args ...any) error {
	return paginate(ctx, t.Tx, t.db.driver, dest, sel, query, args...)
}

func (t *Tx) Count(ctx context.Context, query string, args ...any) (int64, error) {
	return count(ctx, t.Tx, t.db.driver, query, args...)
}

// SelectForUpdate selects and locks the rows of query with the given lock mode.
func (t *Tx) SelectForUpdate(ctx context.Context, dest any, mode dialect.LockMode, timeout int, query string, args ...any) error {
	locked, err := lockForUpdate(t.db.driver, query, nil, mode, timeout, "")
	if err != nil {
		return err
	}
	return selectContext(ctx, t.Tx, t.db.driver, dest, t.Rebind(locked), args...)
}

// NextSequenceValue 在事务中获取序列的下一个值
func (t *Tx) NextSequenceValue(ctx context.Context, name string) (int64, error) {
	seq := t.db.driver.Sequences
	if seq == nil {
		return 0, fmt.Errorf("%w: %s", dialect.ErrNoSequences, t.db.driver.Name)
	}
	var v int64
	err := getContext(ctx, t.Tx, t.db.driver, &v, seq.NextValString(name))
	return v, err
}

// Insert 在事务中插入实体
func (t *Tx) Insert(ctx context.Context, table string, entity any) (int64, error) {
	return insert(ctx, t.Tx, t.db.driver, t.db.props, table, entity)
}
