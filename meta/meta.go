/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

// Package meta describes mapped columns of entity structs.
package meta

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
)

// Column 实体字段对应的列
type Column struct {
	//Name 字段名称
	Name string
	//ColumnName 数据库列名称
	ColumnName string
	//Ignore 是否忽略
	Ignore bool
	//IsPrimaryKey 是否主键
	IsPrimaryKey bool
	//Identity 是否由数据库生成
	Identity bool
	Nullable bool
	Type     dialect.TypeCode
	// Length zero means dialect.DefaultLength
	Length    int64
	Precision int
	Scale     int
}

// Definition column definition such as `NAME varchar2(100 char) not null`.
func (c *Column) Definition(d *dialect.Dialect) (string, error) {
	length, precision, scale := c.Length, c.Precision, c.Scale
	if length == 0 {
		length = dialect.DefaultLength
	}
	if precision == 0 {
		precision = dialect.DefaultPrecision
	}
	if scale == 0 && c.Precision == 0 {
		scale = dialect.DefaultScale
	}
	typ, err := d.ColumnType(c.Type, length, precision, scale)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", c.ColumnName, err)
	}
	sb := strings.Builder{}
	sb.WriteString(d.SQLNameFunc(c.ColumnName))
	sb.WriteByte(' ')
	sb.WriteString(typ)
	if c.Identity {
		identity, err := d.Identity.IdentityColumnString(c.Type)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", c.ColumnName, err)
		}
		sb.WriteByte(' ')
		sb.WriteString(identity)
	}
	if !c.Nullable || c.IsPrimaryKey {
		sb.WriteString(" not null")
	}
	return sb.String(), nil
}

var (
	// fields parsed struct fields by type
	fields = sync.Map{}
	// cache columns by type and resolved column names
	cache = sync.Map{}

	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// field a mapped struct field, column name not yet resolved unless tagged
type field struct {
	col    Column
	tagged bool
}

type cacheKey struct {
	typ   reflect.Type
	names string
}

// ColumnsOf columns of a struct (or pointer to struct) value. Column names
// come from the `db` tag, falling back to nameFunc(field name). The `sqlmx`
// tag holds options: pk, identity, nullable, ignore, type=<name>,
// length=<n>, precision=<n>, scale=<n>.
func ColumnsOf(v any, nameFunc func(string) string) ([]*Column, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("meta: %T is not a struct", v)
	}
	fs, err := fieldsOf(t)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.col.ColumnName
		if !f.tagged && nameFunc != nil {
			names[i] = nameFunc(f.col.Name)
		}
	}
	key := cacheKey{typ: t, names: strings.Join(names, "\x00")}
	if cols, ok := cache.Load(key); ok {
		return cols.([]*Column), nil
	}
	cols := make([]*Column, len(fs))
	for i, f := range fs {
		c := f.col
		c.ColumnName = names[i]
		cols[i] = &c
	}
	actual, _ := cache.LoadOrStore(key, cols)
	return actual.([]*Column), nil
}

func fieldsOf(t reflect.Type) ([]field, error) {
	if fs, ok := fields.Load(t); ok {
		return fs.([]field), nil
	}
	fs, err := parse(t)
	if err != nil {
		return nil, err
	}
	fields.Store(t, fs)
	return fs, nil
}

// embedded struct or *struct fields without a db tag are flattened, columns
// of an embedded pointer are nullable
func parse(t reflect.Type) ([]field, error) {
	var fs []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		dbTag := f.Tag.Get("db")
		if dbTag == "-" {
			continue
		}
		if et, ptr, ok := embeddedStruct(f); ok && dbTag == "" {
			embedded, err := parse(et)
			if err != nil {
				return nil, err
			}
			for _, e := range embedded {
				if ptr {
					e.col.Nullable = true
				}
				fs = append(fs, e)
			}
			continue
		}
		c := Column{Name: f.Name, ColumnName: f.Name, Type: typeOf(f.Type)}
		if dbTag != "" {
			c.ColumnName = dbTag
		}
		if f.Type.Kind() == reflect.Pointer {
			c.Nullable = true
		}
		if err := applyOptions(&c, f.Tag.Get("sqlmx")); err != nil {
			return nil, fmt.Errorf("meta: field %s.%s: %w", t.Name(), f.Name, err)
		}
		fs = append(fs, field{col: c, tagged: dbTag != ""})
	}
	return fs, nil
}

func embeddedStruct(f reflect.StructField) (reflect.Type, bool, bool) {
	if !f.Anonymous {
		return nil, false, false
	}
	t, ptr := f.Type, false
	if t.Kind() == reflect.Pointer {
		t, ptr = t.Elem(), true
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil, false, false
	}
	return t, ptr, true
}

func applyOptions(c *Column, tag string) error {
	if tag == "" {
		return nil
	}
	for _, opt := range strings.Split(tag, ",") {
		k, v, _ := strings.Cut(strings.TrimSpace(opt), "=")
		var err error
		switch strings.ToLower(k) {
		case "":
		case "pk":
			c.IsPrimaryKey = true
		case "identity":
			c.Identity = true
		case "nullable":
			c.Nullable = true
		case "ignore":
			c.Ignore = true
		case "type":
			c.Type, err = dialect.ParseTypeCode(v)
		case "length":
			c.Length, err = strconv.ParseInt(v, 10, 64)
		case "precision":
			c.Precision, err = strconv.Atoi(v)
		case "scale":
			c.Scale, err = strconv.Atoi(v)
		default:
			return fmt.Errorf("unknown option %q", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func typeOf(t reflect.Type) dialect.TypeCode {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == bytesType {
		return dialect.VarBinary
	}
	if t == timeType {
		return dialect.Timestamp
	}
	switch t.Kind() {
	case reflect.Bool:
		return dialect.Boolean
	case reflect.Int8, reflect.Uint8:
		return dialect.TinyInt
	case reflect.Int16, reflect.Uint16:
		return dialect.SmallInt
	case reflect.Int32, reflect.Uint32:
		return dialect.Integer
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return dialect.BigInt
	case reflect.Float32:
		return dialect.Float
	case reflect.Float64:
		return dialect.Double
	case reflect.String:
		return dialect.VarChar
	}
	return dialect.Other
}

// PrimaryKeys column names of the primary key columns.
func PrimaryKeys(cols []*Column) []string {
	var keys []string
	for _, c := range cols {
		if c.IsPrimaryKey {
			keys = append(keys, c.ColumnName)
		}
	}
	return keys
}
