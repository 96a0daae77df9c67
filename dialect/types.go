/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TypeCode generic SQL type code, numerically identical to the JDBC codes so
// that values shared with other tooling keep their meaning.
type TypeCode int

const (
	Bit           TypeCode = -7
	TinyInt       TypeCode = -6
	SmallInt      TypeCode = 5
	Integer       TypeCode = 4
	BigInt        TypeCode = -5
	Float         TypeCode = 6
	Real          TypeCode = 7
	Double        TypeCode = 8
	Numeric       TypeCode = 2
	Decimal       TypeCode = 3
	Char          TypeCode = 1
	VarChar       TypeCode = 12
	LongVarChar   TypeCode = -1
	Date          TypeCode = 91
	Time          TypeCode = 92
	Timestamp     TypeCode = 93
	Binary        TypeCode = -2
	VarBinary     TypeCode = -3
	LongVarBinary TypeCode = -4
	Null          TypeCode = 0
	Other         TypeCode = 1111
	Blob          TypeCode = 2004
	Clob          TypeCode = 2005
	Boolean       TypeCode = 16
	NChar         TypeCode = -15
	NVarChar      TypeCode = -9
	LongNVarChar  TypeCode = -16
	NClob         TypeCode = 2011
	// TiberoCursor ref cursor type used for result set out parameters
	TiberoCursor TypeCode = -17
)

var typeCodeNames = map[TypeCode]string{
	Bit: "bit", TinyInt: "tinyint", SmallInt: "smallint", Integer: "integer",
	BigInt: "bigint", Float: "float", Real: "real", Double: "double",
	Numeric: "numeric", Decimal: "decimal", Char: "char", VarChar: "varchar",
	LongVarChar: "longvarchar", Date: "date", Time: "time", Timestamp: "timestamp",
	Binary: "binary", VarBinary: "varbinary", LongVarBinary: "longvarbinary",
	Null: "null", Other: "other", Blob: "blob", Clob: "clob", Boolean: "boolean",
	NChar: "nchar", NVarChar: "nvarchar", LongNVarChar: "longnvarchar", NClob: "nclob",
	TiberoCursor: "cursor",
}

func (c TypeCode) String() string {
	if n, ok := typeCodeNames[c]; ok {
		return n
	}
	return strconv.Itoa(int(c))
}

// ParseTypeCode accepts either a type name (varchar) or its numeric code.
func ParseTypeCode(s string) (TypeCode, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return TypeCode(n), nil
	}
	for code, name := range typeCodeNames {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoColumnType, s)
}

// column defaults used when the caller does not know length/precision/scale
const (
	DefaultLength    = 255
	DefaultPrecision = 19
	DefaultScale     = 2
)

type weightedName struct {
	capacity int64
	name     string
}

// TypeNames maps type codes to column type templates. A template may contain
// $l (length), $p (precision) and $s (scale).
type TypeNames struct {
	defaults map[TypeCode]string
	weighted map[TypeCode][]weightedName
}

func NewTypeNames() *TypeNames {
	return &TypeNames{
		defaults: map[TypeCode]string{},
		weighted: map[TypeCode][]weightedName{},
	}
}

// Put sets the default template for code.
func (t *TypeNames) Put(code TypeCode, name string) *TypeNames {
	t.defaults[code] = name
	return t
}

// PutCapacity registers name for columns of code whose length is at most
// capacity. The smallest matching capacity wins.
func (t *TypeNames) PutCapacity(code TypeCode, capacity int64, name string) *TypeNames {
	list := t.weighted[code]
	for i := range list {
		if list[i].capacity == capacity {
			list[i].name = name
			return t
		}
	}
	list = append(list, weightedName{capacity: capacity, name: name})
	sort.Slice(list, func(i, j int) bool { return list[i].capacity < list[j].capacity })
	t.weighted[code] = list
	return t
}

// Default returns the unsubstituted default template for code.
func (t *TypeNames) Default(code TypeCode) (string, error) {
	name, ok := t.defaults[code]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoColumnType, code)
	}
	return name, nil
}

// Get resolves the column type of code for the given length, precision and scale.
func (t *TypeNames) Get(code TypeCode, length int64, precision, scale int) (string, error) {
	for _, w := range t.weighted[code] {
		if length <= w.capacity {
			return substitute(w.name, length, precision, scale), nil
		}
	}
	name, err := t.Default(code)
	if err != nil {
		return "", err
	}
	return substitute(name, length, precision, scale), nil
}

func substitute(name string, length int64, precision, scale int) string {
	name = strings.Replace(name, "$s", strconv.Itoa(scale), 1)
	name = strings.Replace(name, "$l", strconv.FormatInt(length, 10), 1)
	return strings.Replace(name, "$p", strconv.Itoa(precision), 1)
}
