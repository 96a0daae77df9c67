/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import "fmt"

// IdentityColumnSupport database generated key columns.
type IdentityColumnSupport struct {
	Supported    bool
	InsertSelect bool
	ColumnString string
	// InsertString value to put in an insert for the identity column, empty
	// means the column is left out of the insert.
	InsertString string
	// KeysReturned driver reports generated keys for named columns
	KeysReturned bool
	// Returning clause appended to an insert to read the key back, %s is the
	// key column. Empty means the key comes from the driver's last insert id.
	Returning string
}

// IdentityColumnString column definition suffix for an identity column of code.
func (i *IdentityColumnSupport) IdentityColumnString(TypeCode) (string, error) {
	if i == nil || !i.Supported {
		return "", ErrNoIdentity
	}
	return i.ColumnString, nil
}

// GeneratedKeys validates the key columns of an identity entity and returns
// the columns the insert has to report back.
func (i *IdentityColumnSupport) GeneratedKeys(keyColumns []string) ([]string, error) {
	if i == nil || !i.Supported {
		return nil, ErrNoIdentity
	}
	if len(keyColumns) > 1 {
		return nil, fmt.Errorf("%w: %v", ErrMultiColumnKey, keyColumns)
	}
	return keyColumns, nil
}
