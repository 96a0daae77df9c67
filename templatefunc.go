/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/meta"
	"github.com/TiberoClient/sqlmx-tibero/utils"
)

// sqlFuncs template helpers bound to one dialect
type sqlFuncs struct {
	d *dialect.Dialect
}

// MakeFuncMap SQL模板函数
func MakeFuncMap(driver *dialect.Dialect) template.FuncMap {
	f := sqlFuncs{d: driver}
	return template.FuncMap{
		// 条件
		"where":      func(v any) string { return f.where(v, "AND", false) },
		"whereOr":    func(v any) string { return f.where(v, "OR", false) },
		"namedWhere": func(v any) string { return f.where(v, "AND", true) },
		"nwhere":     func(v any) string { return f.where(v, "AND", true) },
		"orderBy":    f.orderBy,
		"not":        driver.NotExpression,
		// 值与名称
		"v":       f.value,
		"list":    func(v []any) string { return f.values(v) },
		"n":       driver.SQLNameFunc,
		"sqlName": driver.SQLNameFunc,
		// 列
		"columns":    func(cols []*meta.Column) string { return f.join(cols, writable, f.name) },
		"allColumns": func(cols []*meta.Column) string { return f.join(cols, readable, f.name) },
		"args":       func(cols []*meta.Column) string { return f.join(cols, writable, f.arg) },
		"setArgs":    func(cols []*meta.Column) string { return f.join(cols, writable, f.set) },
		"columnDefs": f.columnDefs,
		"columnType": f.columnType,
		// 方言
		"driver":     func() string { return driver.Name },
		"dialect":    func() string { return driver.Name },
		"forUpdate":  f.forUpdate,
		"skipLocked": func() string { return driver.WriteLockString(dialect.SkipLocked) },
		"nextval":    f.nextval,
		"fn":         driver.RenderFunction,
		"hint":       f.hint,
		"now":        func() string { return driver.Strings.CurrentTimestampFunction },
	}
}

func readable(c *meta.Column) bool {
	return !c.Ignore
}

func writable(c *meta.Column) bool {
	return readable(c) && !c.IsPrimaryKey
}

func (f sqlFuncs) name(c *meta.Column) string {
	return f.d.SQLNameFunc(c.ColumnName)
}

func (f sqlFuncs) arg(c *meta.Column) string {
	return f.d.NamedPrefix + c.ColumnName
}

func (f sqlFuncs) set(c *meta.Column) string {
	return f.name(c) + "=" + f.arg(c)
}

// join renders the columns accepted by keep, comma separated
func (f sqlFuncs) join(cols []*meta.Column, keep func(*meta.Column) bool, render func(*meta.Column) string) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if !keep(c) {
			continue
		}
		parts = append(parts, render(c))
	}
	return strings.Join(parts, ",")
}

func (f sqlFuncs) columnDefs(cols []*meta.Column) (string, error) {
	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Ignore {
			continue
		}
		def, err := c.Definition(f.d)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	return strings.Join(defs, ", "), nil
}

// columnType accepts a type name (varchar) or a type code (-5)
func (f sqlFuncs) columnType(code string) (string, error) {
	c, err := dialect.ParseTypeCode(code)
	if err != nil {
		return "", err
	}
	return f.d.DefaultColumnType(c)
}

func (f sqlFuncs) forUpdate(mode string) (string, error) {
	m, err := dialect.ParseLockMode(mode)
	if err != nil {
		return "", err
	}
	return f.d.ForUpdate(m, dialect.WaitForever, ""), nil
}

func (f sqlFuncs) nextval(seq string) (string, error) {
	if f.d.Sequences == nil {
		return "", fmt.Errorf("%w: %s", dialect.ErrNoSequences, f.d.Name)
	}
	return f.d.Sequences.SelectNextValString(seq), nil
}

// hint renders "/*+ hints */ " for dialects with optimizer hints, nothing otherwise
func (f sqlFuncs) hint(hints string) string {
	if !f.d.Capabilities.QueryHints || strings.TrimSpace(hints) == "" {
		return ""
	}
	return "/*+ " + hints + " */ "
}

// orderBy 列名按字典序输出
func (f sqlFuncs) orderBy(order map[string]string) string {
	if len(order) == 0 {
		return ""
	}
	keys := make([]string, 0, len(order))
	for k := range order {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, f.d.SQLNameFunc(f.d.NameFunc(k))+" "+order[k])
	}
	return f.d.KeywordWithSpace("ORDER BY") + strings.Join(items, ",") + " "
}

// where 由 map 或 struct 生成 WHERE 子句；map 键按字典序，struct 跳过零值字段
func (f sqlFuncs) where(arg any, op string, named bool) string {
	if arg == nil {
		return ""
	}
	sep := f.d.KeywordWithSpace(op)
	var conds []string

	v := reflect.Indirect(reflect.ValueOf(arg))
	switch v.Kind() {
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			val := v.MapIndex(k).Interface()
			cond := f.d.SQLNameFunc(f.d.NameFunc(k.String())) + f.compare(val)
			if named {
				cond += ":" + k.String()
			} else {
				cond += f.value(val)
			}
			conds = append(conds, cond)
		}
	case reflect.Struct:
		typ := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !typ.Field(i).IsExported() || field.IsZero() {
				continue
			}
			conds = append(conds, f.d.SQLNameFunc(f.d.NameFunc(typ.Field(i).Name))+"="+f.value(field.Interface()))
		}
	}
	if len(conds) == 0 {
		return " "
	}
	return f.d.KeywordWithSpace("WHERE") + strings.Join(conds, sep) + " "
}

// compare strings with wildcards are matched with LIKE
func (f sqlFuncs) compare(val any) string {
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.String && strings.ContainsAny(rv.String(), "%?") {
		return f.d.KeywordWithSpace("LIKE")
	}
	return "="
}

// values 切片按逗号拼接，其他值按单值处理
func (f sqlFuncs) values(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return f.value(v)
	}
	items := make([]string, rv.Len())
	for i := range items {
		items[i] = f.value(rv.Index(i).Interface())
	}
	return strings.Join(items, ",")
}

// value SQL字面量，字符串（包括自定义字符串类型）做转义防注入
func (f sqlFuncs) value(arg any) string {
	switch a := arg.(type) {
	case nil:
		return f.d.Keyword("NULL")
	case time.Time:
		return a.Format(f.d.DateFormat)
	case *time.Time:
		if a == nil {
			return f.d.Keyword("NULL")
		}
		return a.Format(f.d.DateFormat)
	}
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return f.d.Keyword("NULL")
		}
		return f.value(rv.Elem().Interface())
	case reflect.String:
		return f.quote(rv.String())
	case reflect.Bool:
		if rv.Bool() {
			return f.d.Keyword("TRUE")
		}
		return f.d.Keyword("FALSE")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	}
	return f.quote(fmt.Sprint(arg))
}

func (f sqlFuncs) quote(s string) string {
	return "'" + utils.Escape(s) + "'"
}

func where(driver *dialect.Dialect, v any) string {
	return sqlFuncs{d: driver}.where(v, "AND", false)
}

func whereOr(driver *dialect.Dialect, v any) string {
	return sqlFuncs{d: driver}.where(v, "OR", false)
}

func namedWhere(driver *dialect.Dialect, v any) string {
	return sqlFuncs{d: driver}.where(v, "AND", true)
}

func sqlValue(driver *dialect.Dialect, v any) string {
	return sqlFuncs{d: driver}.value(v)
}

func sqlValues(driver *dialect.Dialect, v any) string {
	return sqlFuncs{d: driver}.values(v)
}
