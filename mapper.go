/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"context"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
)

// NewSelectFunc 创建模板查询函数，参数按位置绑定，数据库在调用时按名称从 Manager 获取
func NewSelectFunc[T any](dbName, tpl string) func(args ...any) ([]T, error) {
	return func(args ...any) ([]T, error) {
		db, err := Get(dbName)
		if err != nil {
			return nil, err
		}
		var result []T
		err = db.SelectEx(&result, tpl, args...)
		return result, err
	}
}

// NewNamedSelectFunc 创建模板查询函数，参数按名称绑定
func NewNamedSelectFunc[T any](dbName, tpl string) func(arg any) ([]T, error) {
	return func(arg any) ([]T, error) {
		db, err := Get(dbName)
		if err != nil {
			return nil, err
		}
		var result []T
		err = db.SelectEx(&result, tpl, arg)
		return result, err
	}
}

// NewGetFunc 创建模板单行查询函数
func NewGetFunc[T any](dbName, tpl string) func(args ...any) (T, error) {
	return func(args ...any) (T, error) {
		var result T
		db, err := Get(dbName)
		if err != nil {
			return result, err
		}
		err = db.GetEx(&result, tpl, args...)
		return result, err
	}
}

// Page 分页查询结果
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// SelectPage counts the rows of query, then selects the one based page.
func SelectPage[T any](ctx context.Context, db *DB, page, size int, query string, args ...any) (*Page[T], error) {
	if db == nil {
		return nil, ErrNilDB
	}
	total, err := db.Count(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	p := &Page[T]{Items: []T{}, Total: total, Page: max(page, 1), Size: size}
	if total == 0 || size <= 0 {
		return p, nil
	}
	if err = db.Paginate(ctx, &p.Items, dialect.PageSelection(page, size), query, args...); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPageFunc 创建分页查询函数
func NewPageFunc[T any](dbName, query string) func(ctx context.Context, page, size int, args ...any) (*Page[T], error) {
	return func(ctx context.Context, page, size int, args ...any) (*Page[T], error) {
		db, err := Get(dbName)
		if err != nil {
			return nil, err
		}
		return SelectPage[T](ctx, db, page, size, query, args...)
	}
}
