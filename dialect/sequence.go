/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// SequenceSupport sequence DDL/DML templates; %s is the sequence name.
type SequenceSupport struct {
	NextVal    string // tibero: %s.nextval
	SelectFrom string // tibero: select %s from dual
	Create     string
	Drop       string
	Query      string
	Pooled     bool
	Columns    SequenceColumns
}

// SequenceColumns column names of the sequence catalog query. Empty names
// are not read.
type SequenceColumns struct {
	Name      string
	Catalog   string
	Schema    string
	Start     string
	Min       string
	Max       string
	Increment string
}

// SequenceInformation a sequence read from the catalog.
type SequenceInformation struct {
	Catalog     string
	Schema      string
	Name        string
	StartValue  *int64
	MinValue    *int64
	MaxValue    *int64
	IncrementBy *int64
}

// SelectNextValString expression yielding the next value, usable in an insert.
func (s *SequenceSupport) SelectNextValString(name string) string {
	return fmt.Sprintf(s.NextVal, name)
}

// NextValString standalone query returning the next value.
func (s *SequenceSupport) NextValString(name string) string {
	return fmt.Sprintf(s.SelectFrom, s.SelectNextValString(name))
}

func (s *SequenceSupport) CreateSequenceString(name string) string {
	return fmt.Sprintf(s.Create, name)
}

// CreateSequenceStringWith create statement with an initial value and
// increment. A negative start with a positive step needs an explicit
// minvalue, a positive start with a negative step an explicit maxvalue.
func (s *SequenceSupport) CreateSequenceStringWith(name string, initial, increment int) string {
	create := s.CreateSequenceString(name)
	switch {
	case initial < 0 && increment > 0:
		return fmt.Sprintf("%s minvalue %d start with %d increment by %d", create, initial, initial, increment)
	case initial > 0 && increment < 0:
		return fmt.Sprintf("%s maxvalue %d start with %d increment by %d", create, initial, initial, increment)
	}
	return fmt.Sprintf("%s start with %d increment by %d", create, initial, increment)
}

func (s *SequenceSupport) DropSequenceString(name string) string {
	return fmt.Sprintf(s.Drop, name)
}

// ScanSequence reads one catalog row, as returned by sqlx MapScan. Column
// names are matched case-insensitively.
func (s *SequenceSupport) ScanSequence(row map[string]any) (SequenceInformation, error) {
	lookup := make(map[string]any, len(row))
	for k, v := range row {
		lookup[strings.ToLower(k)] = v
	}
	get := func(col string) (any, bool) {
		if col == "" {
			return nil, false
		}
		v, ok := lookup[strings.ToLower(col)]
		return v, ok && v != nil
	}
	info := SequenceInformation{}
	v, ok := get(s.Columns.Name)
	if !ok {
		return info, fmt.Errorf("sequence row has no %s column", s.Columns.Name)
	}
	info.Name = toString(v)
	if v, ok := get(s.Columns.Catalog); ok {
		info.Catalog = toString(v)
	}
	if v, ok := get(s.Columns.Schema); ok {
		info.Schema = toString(v)
	}
	var err error
	for _, f := range []struct {
		col string
		dst **int64
	}{
		{s.Columns.Start, &info.StartValue},
		{s.Columns.Min, &info.MinValue},
		{s.Columns.Max, &info.MaxValue},
		{s.Columns.Increment, &info.IncrementBy},
	} {
		v, ok := get(f.col)
		if !ok {
			continue
		}
		if *f.dst, err = toInt64(v); err != nil {
			return info, fmt.Errorf("sequence %s column %s: %w", info.Name, f.col, err)
		}
	}
	return info, nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

// toInt64 converts a numeric catalog value. Values outside the int64 range
// (the default maxvalue of a sequence is 1e27) are clamped.
func toInt64(v any) (*int64, error) {
	var n int64
	switch x := v.(type) {
	case int64:
		n = x
	case int32:
		n = int64(x)
	case int:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			n = math.MaxInt64
		} else {
			n = int64(x)
		}
	case float64:
		if math.IsNaN(x) {
			return nil, fmt.Errorf("sequence value %v is not a number", x)
		}
		return clampFloat(big.NewFloat(x)), nil
	case float32:
		return toInt64(float64(x))
	case []byte:
		return parseDecimal(string(x))
	case string:
		return parseDecimal(x)
	default:
		return parseDecimal(fmt.Sprint(x))
	}
	return &n, nil
}

func parseDecimal(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	f, _, err := big.ParseFloat(s, 10, 128, big.ToZero)
	if err != nil {
		return nil, err
	}
	return clampFloat(f), nil
}

func clampFloat(f *big.Float) *int64 {
	var n int64
	switch {
	case f.Cmp(big.NewFloat(math.MaxInt64)) >= 0:
		n = math.MaxInt64
	case f.Cmp(big.NewFloat(math.MinInt64)) <= 0:
		n = math.MinInt64
	default:
		n, _ = f.Int64()
	}
	return &n
}
