/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"errors"

	"github.com/TiberoClient/sqlmx-tibero/sqlerr"
	"github.com/lib/pq"
)

// tibero error codes
const (
	tbUniqueViolation    = 1
	tbResourceBusy       = 54
	tbDeadlock           = 60
	tbUserCancel         = 1013
	tbCannotInsertNull   = 1400
	tbCannotUpdateToNull = 1407
	tbParentKeyNotFound  = 2291
	tbChildRecordFound   = 2292
	tbLibraryCacheLock   = 4020
	tbLibraryCachePin    = 4021
	tbLockWaitTimeout    = 30006
)

// tiberoConstraintName constraint names appear as "(SCHEMA.NAME)" in
// unique and referential violations.
var tiberoConstraintName = sqlerr.TemplatedExtractor(func(err error) string {
	code, _ := sqlerr.Code(err)
	switch code {
	case tbUniqueViolation, tbParentKeyNotFound, tbChildRecordFound:
		return sqlerr.ExtractUsingTemplate("(", ")", err.Error())
	}
	return ""
})

func tiberoConverter(extractor sqlerr.ConstraintNameExtractor) sqlerr.Converter {
	return sqlerr.Chain{
		sqlerr.ConverterFunc(func(err error, message, query string) *sqlerr.Error {
			code, ok := sqlerr.Code(err)
			if !ok {
				return nil
			}
			switch code {
			case tbLockWaitTimeout, tbResourceBusy, tbLibraryCachePin:
				return sqlerr.New(sqlerr.KindLockTimeout, message, query, err)
			case tbDeadlock, tbLibraryCacheLock:
				return sqlerr.New(sqlerr.KindLockAcquisition, message, query, err)
			case tbUserCancel:
				return sqlerr.New(sqlerr.KindQueryTimeout, message, query, err)
			case tbCannotUpdateToNull, tbUniqueViolation, tbParentKeyNotFound, tbChildRecordFound, tbCannotInsertNull:
				return sqlerr.New(sqlerr.KindConstraintViolation, message, query, err).
					WithConstraint(extractor.ExtractConstraintName(err))
			}
			return nil
		}),
		sqlerr.SQLStateConverter(extractor),
	}
}

// mysql error numbers
const (
	myLockWaitTimeout  = 1205
	myDeadlock         = 1213
	myQueryInterrupted = 3024
	myDuplicateEntry   = 1062
	myBadNull          = 1048
	myRowIsReferenced  = 1451
	myNoReferencedRow  = 1452
	myCheckConstraint  = 3819
)

var mysqlConstraintName = sqlerr.TemplatedExtractor(func(err error) string {
	code, _ := sqlerr.Code(err)
	switch code {
	case myDuplicateEntry:
		return sqlerr.ExtractUsingTemplate("for key '", "'", err.Error())
	case myRowIsReferenced, myNoReferencedRow:
		return sqlerr.ExtractUsingTemplate("CONSTRAINT `", "`", err.Error())
	case myCheckConstraint:
		return sqlerr.ExtractUsingTemplate("constraint '", "'", err.Error())
	}
	return ""
})

func mysqlConverter(extractor sqlerr.ConstraintNameExtractor) sqlerr.Converter {
	return sqlerr.Chain{
		sqlerr.ConverterFunc(func(err error, message, query string) *sqlerr.Error {
			code, ok := sqlerr.Code(err)
			if !ok {
				return nil
			}
			switch code {
			case myLockWaitTimeout:
				return sqlerr.New(sqlerr.KindLockTimeout, message, query, err)
			case myDeadlock:
				return sqlerr.New(sqlerr.KindLockAcquisition, message, query, err)
			case myQueryInterrupted:
				return sqlerr.New(sqlerr.KindQueryTimeout, message, query, err)
			case myDuplicateEntry, myBadNull, myRowIsReferenced, myNoReferencedRow, myCheckConstraint:
				return sqlerr.New(sqlerr.KindConstraintViolation, message, query, err).
					WithConstraint(extractor.ExtractConstraintName(err))
			}
			return nil
		}),
		sqlerr.SQLStateConverter(extractor),
	}
}

// postgresConstraintName pq reports the constraint in its own field
var postgresConstraintName = sqlerr.TemplatedExtractor(func(err error) string {
	var e *pq.Error
	if errors.As(err, &e) {
		return e.Constraint
	}
	return ""
})

func postgresConverter(extractor sqlerr.ConstraintNameExtractor) sqlerr.Converter {
	return sqlerr.Chain{
		sqlerr.ConverterFunc(func(err error, message, query string) *sqlerr.Error {
			switch sqlerr.SQLState(err) {
			case "55P03":
				return sqlerr.New(sqlerr.KindLockTimeout, message, query, err)
			case "40P01":
				return sqlerr.New(sqlerr.KindLockAcquisition, message, query, err)
			case "57014":
				return sqlerr.New(sqlerr.KindQueryTimeout, message, query, err)
			}
			return nil
		}),
		sqlerr.SQLStateConverter(extractor),
	}
}

// sql server error numbers
const (
	msLockTimeout      = 1222
	msDeadlock         = 1205
	msUniqueKey        = 2627
	msUniqueIndex      = 2601
	msForeignKey       = 547
	msCannotInsertNull = 515
)

var sqlServerConstraintName = sqlerr.TemplatedExtractor(func(err error) string {
	code, _ := sqlerr.Code(err)
	switch code {
	case msUniqueKey, msForeignKey:
		return sqlerr.ExtractUsingTemplate("constraint '", "'", err.Error())
	case msUniqueIndex:
		return sqlerr.ExtractUsingTemplate("unique index '", "'", err.Error())
	}
	return ""
})

func sqlServerConverter(extractor sqlerr.ConstraintNameExtractor) sqlerr.Converter {
	return sqlerr.Chain{
		sqlerr.ConverterFunc(func(err error, message, query string) *sqlerr.Error {
			code, ok := sqlerr.Code(err)
			if !ok {
				return nil
			}
			switch code {
			case msLockTimeout:
				return sqlerr.New(sqlerr.KindLockTimeout, message, query, err)
			case msDeadlock:
				return sqlerr.New(sqlerr.KindLockAcquisition, message, query, err)
			case msUniqueKey, msUniqueIndex, msForeignKey, msCannotInsertNull:
				return sqlerr.New(sqlerr.KindConstraintViolation, message, query, err).
					WithConstraint(extractor.ExtractConstraintName(err))
			}
			return nil
		}),
		sqlerr.SQLStateConverter(extractor),
	}
}
