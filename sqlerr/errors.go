/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

// Package sqlerr turns raw driver errors into structured errors that callers
// can match with errors.Is / errors.As regardless of the database behind them.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a translated database error.
type Kind int

const (
	KindGeneric Kind = iota
	KindLockTimeout
	KindLockAcquisition
	KindQueryTimeout
	KindConstraintViolation
)

var (
	ErrLockTimeout         = errors.New("lock timeout")
	ErrLockAcquisition     = errors.New("could not acquire lock")
	ErrQueryTimeout        = errors.New("query timeout")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrGeneric             = errors.New("database error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindLockTimeout:
		return ErrLockTimeout
	case KindLockAcquisition:
		return ErrLockAcquisition
	case KindQueryTimeout:
		return ErrQueryTimeout
	case KindConstraintViolation:
		return ErrConstraintViolation
	default:
		return ErrGeneric
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is a translated database error. Cause keeps the driver error.
type Error struct {
	Kind       Kind
	Code       int
	SQLState   string
	Message    string
	SQL        string
	Constraint string
	Cause      error
}

// New creates an Error of kind, filling Code and SQLState from cause.
func New(kind Kind, message, query string, cause error) *Error {
	e := &Error{Kind: kind, Message: message, SQL: query, Cause: cause}
	if code, ok := Code(cause); ok {
		e.Code = code
	}
	e.SQLState = SQLState(cause)
	return e
}

// WithConstraint sets the violated constraint name.
func (e *Error) WithConstraint(name string) *Error {
	e.Constraint = name
	return e
}

func (e *Error) Error() string {
	sb := strings.Builder{}
	sb.WriteString("sqlmx: ")
	sb.WriteString(e.Kind.String())
	if e.Code != 0 {
		fmt.Fprintf(&sb, " [%d]", e.Code)
	} else if e.SQLState != "" {
		fmt.Fprintf(&sb, " [%s]", e.SQLState)
	}
	if e.Constraint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Constraint)
		sb.WriteString(")")
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	} else if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	if e.SQL != "" {
		sb.WriteString(" [")
		sb.WriteString(e.SQL)
		sb.WriteString("]")
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func IsLockTimeout(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

func IsLockAcquisition(err error) bool {
	return errors.Is(err, ErrLockAcquisition)
}

func IsQueryTimeout(err error) bool {
	return errors.Is(err, ErrQueryTimeout)
}

func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// ConstraintName returns the violated constraint recorded on a translated
// error, or "" when err is not a constraint violation.
func ConstraintName(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindConstraintViolation {
		return e.Constraint
	}
	return ""
}
