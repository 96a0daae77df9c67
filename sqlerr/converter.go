/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Converter translates a driver error. It returns nil when it does not
// recognise err, so converters can be chained.
type Converter interface {
	Convert(err error, message, query string) *Error
}

type ConverterFunc func(err error, message, query string) *Error

func (f ConverterFunc) Convert(err error, message, query string) *Error {
	return f(err, message, query)
}

// Chain tries each converter in order and returns the first match.
type Chain []Converter

func (c Chain) Convert(err error, message, query string) *Error {
	for _, conv := range c {
		if conv == nil {
			continue
		}
		if e := conv.Convert(err, message, query); e != nil {
			return e
		}
	}
	return nil
}

// ConstraintNameExtractor recovers the violated constraint name from an error.
type ConstraintNameExtractor interface {
	ExtractConstraintName(err error) string
}

// TemplatedExtractor applies its function to err and every wrapped cause
// until one of them yields a name.
type TemplatedExtractor func(err error) string

func (f TemplatedExtractor) ExtractConstraintName(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if name := f(e); name != "" {
			return name
		}
	}
	return ""
}

// ExtractUsingTemplate returns the text between the first occurrence of start
// and the following occurrence of end (or the end of message).
func ExtractUsingTemplate(start, end, message string) string {
	i := strings.Index(message, start)
	if i < 0 {
		return ""
	}
	i += len(start)
	j := strings.Index(message[i:], end)
	if j < 0 {
		return message[i:]
	}
	return message[i : i+j]
}

// SQLStateConverter is the fallback used after vendor-code converters:
// SQLSTATE class 23 is an integrity constraint violation, 40001 a
// serialization failure.
func SQLStateConverter(extractor ConstraintNameExtractor) Converter {
	return ConverterFunc(func(err error, message, query string) *Error {
		state := SQLState(err)
		if len(state) != 5 {
			return nil
		}
		switch {
		case state[:2] == "23":
			e := New(KindConstraintViolation, message, query, err)
			if extractor != nil {
				e.Constraint = extractor.ExtractConstraintName(err)
			}
			return e
		case state == "40001":
			return New(KindLockAcquisition, message, query, err)
		}
		return nil
	})
}

// Translate runs conv over err. Errors callers compare against directly
// (sql.ErrNoRows, driver.ErrBadConn, context.Canceled) are returned untouched
// and unrecognised errors come back as KindGeneric.
func Translate(conv Converter, err error, message, query string) error {
	if err == nil {
		return nil
	}
	var translated *Error
	if errors.As(err, &translated) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New(KindQueryTimeout, message, query, err)
	}
	if conv != nil {
		if e := conv.Convert(err, message, query); e != nil {
			logrus.WithFields(logrus.Fields{
				"kind":       e.Kind.String(),
				"code":       e.Code,
				"constraint": e.Constraint,
			}).Debug("translated database error")
			return e
		}
	}
	return New(KindGeneric, message, query, err)
}
