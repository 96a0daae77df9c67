/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import "errors"

var (
	ErrNilDB           = errors.New("db is nil")
	ErrNilDriver       = errors.New("dialect is nil")
	ErrUnknownDialect  = errors.New("unknown dialect")
	ErrFollowOnLocking = errors.New("query requires follow-on locking")
	ErrDBNotFound      = errors.New("database not found")
)
