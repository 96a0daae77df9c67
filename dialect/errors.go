/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import "errors"

var (
	ErrNoColumnType    = errors.New("no column type mapping")
	ErrUnknownFunction = errors.New("unknown sql function")
	ErrStatementType   = errors.New("can't determine SQL statement type")
	ErrMultiColumnKey  = errors.New("identity generator cannot be used with multi-column keys")
	ErrNoSequences     = errors.New("dialect does not support sequences")
	ErrNoIdentity      = errors.New("dialect does not support identity columns")
	ErrNoIDTable       = errors.New("dialect does not support id tables")
)
