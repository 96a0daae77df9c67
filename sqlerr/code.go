/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlerr

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// errorCoder is implemented by drivers exposing a vendor error code.
type errorCoder interface {
	ErrorCode() int
}

// errorNumberer is implemented by go-mssqldb errors.
type errorNumberer interface {
	SQLErrorNumber() int32
}

// sqlStateError is implemented by pgx and some ODBC wrappers.
type sqlStateError interface {
	SQLState() string
}

var (
	// TBR-12345 / ORA-00054 / JDBC-10007 prefixes in driver messages
	vendorCodeRe = regexp.MustCompile(`\b(?:TBR|ORA|JDBC)-0*(\d+)`)
	// ODBC diagnostics are rendered as "{23000} [vendor] message"
	odbcStateRe = regexp.MustCompile(`\{([0-9A-Z]{5})\}`)
	sqlStateRe  = regexp.MustCompile(`SQLSTATE[ =:\[]*([0-9A-Z]{5})`)
)

func asError[T any](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}

// Code extracts the vendor error code from err. Tibero reports negative
// codes through some interfaces, the absolute value is returned.
func Code(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	if e, ok := asError[errorCoder](err); ok {
		return abs(e.ErrorCode()), true
	}
	if e, ok := asError[*mysql.MySQLError](err); ok {
		return int(e.Number), true
	}
	if e, ok := asError[errorNumberer](err); ok {
		return abs(int(e.SQLErrorNumber())), true
	}
	if m := vendorCodeRe.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			return n, true
		}
	}
	return 0, false
}

// SQLState extracts the five character SQLSTATE from err, "" when unknown.
func SQLState(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError[sqlStateError](err); ok {
		return e.SQLState()
	}
	if e, ok := asError[*pq.Error](err); ok {
		return string(e.Code)
	}
	if e, ok := asError[*mysql.MySQLError](err); ok && e.SQLState != [5]byte{} {
		return string(e.SQLState[:])
	}
	msg := err.Error()
	if m := odbcStateRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := sqlStateRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
