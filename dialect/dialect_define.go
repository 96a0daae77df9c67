/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"

	"github.com/TiberoClient/sqlmx-tibero/utils"
)

var (
	//MySQL MySQL驱动
	MySQL = &Dialect{
		Name:         "mysql",
		SupportNamed: true,
		NamedPrefix:  ":",
		DateFormat:   "'2006-01-02 15:04:05'",
		SQLNameFunc:  MakeNameFunc("`", "`"),
		NameFunc:     utils.LowerCase,
		PlaceHolder:  "?",
		Types: NewTypeNames().
			Put(Bit, "bit").
			Put(Boolean, "bit").
			Put(BigInt, "bigint").
			Put(SmallInt, "smallint").
			Put(TinyInt, "tinyint").
			Put(Integer, "integer").
			Put(Char, "char(1)").
			Put(Float, "float").
			Put(Double, "double precision").
			Put(Date, "date").
			Put(Time, "time").
			Put(Timestamp, "datetime").
			Put(VarBinary, "longblob").
			PutCapacity(VarBinary, 16777215, "mediumblob").
			PutCapacity(VarBinary, 65535, "blob").
			PutCapacity(VarBinary, 255, "tinyblob").
			Put(Binary, "binary($l)").
			Put(LongVarBinary, "longblob").
			PutCapacity(LongVarBinary, 16777215, "mediumblob").
			Put(Numeric, "decimal($p,$s)").
			Put(Decimal, "decimal($p,$s)").
			Put(Blob, "longblob").
			Put(Clob, "longtext").
			Put(NClob, "longtext").
			Put(VarChar, "longtext").
			PutCapacity(VarChar, 255, "varchar($l)").
			Put(NVarChar, "varchar($l)").
			Put(LongVarChar, "longtext"),
		Functions: NewFunctionRegistry().
			Register("concat", StandardFunction{Name: "concat", Type: StringValue}).
			Register("coalesce", StandardFunction{Name: "coalesce"}).
			Register("lower", StandardFunction{Name: "lower"}).
			Register("upper", StandardFunction{Name: "upper"}).
			Register("current_timestamp", NoArgFunction{Name: "now", Type: TimestampValue, Parens: true}),
		Limit: LimitOffsetHandler{WithOffset: " limit ?, ?", WithoutOffset: " limit ?"},
		Locks: &LockSupport{
			ForUpdate:  " for update",
			NoWait:     " nowait",
			SkipLocked: " skip locked",
			ReadLock:   " lock in share mode",
		},
		Identity: &IdentityColumnSupport{
			Supported:    true,
			ColumnString: "not null auto_increment",
			KeysReturned: true,
		},
		IDTable: &IDTableSupport{
			Prefix:        "HT_",
			MaxNameLength: 64,
			CreateCommand: "create temporary table if not exists",
			DropCommand:   "drop temporary table",
		},
		Capabilities: Capabilities{
			Limit:                             true,
			UnionAll:                          true,
			CommentOn:                         false,
			EmptyInList:                       false,
			ExistsInSelect:                    true,
			NoWait:                            true,
			SkipLocked:                        true,
			RowValueConstructorInInList:       true,
			TupleDistinctCounts:               true,
			CanCreateSchema:                   true,
			DropConstraints:                   true,
			ANSIJoins:                         true,
			ANSICase:                          true,
			CurrentTimestampSelection:         true,
			MaxAliasLength:                    64,
			NativeIdentifierGeneratorStrategy: "identity",
		},
		Strings: Strings{
			CurrentTimestampSelect:   "select now()",
			CurrentTimestampFunction: "now",
			AddColumn:                "add column",
			CrossJoinSeparator:       " cross join ",
			SelectGUID:               "select uuid()",
			CurrentSchema:            "select database()",
		},
		Properties: Properties{
			PropBatchSize: "15",
		},
		Errors:      mysqlConverter(mysqlConstraintName),
		Constraints: mysqlConstraintName,
	}

	//SQLServer SQLServer驱动
	SQLServer = &Dialect{
		Name:         "mssql",
		SupportNamed: true,
		NamedPrefix:  "@",
		PlaceHolder:  "?",
		DateFormat:   "'2006-01-02 15:04:05'",
		SQLNameFunc:  MakeNameFunc("[", "]"),
		NameFunc:     utils.LowerCase,
		Types: NewTypeNames().
			Put(Bit, "bit").
			Put(Boolean, "bit").
			Put(BigInt, "bigint").
			Put(SmallInt, "smallint").
			Put(TinyInt, "smallint").
			Put(Integer, "int").
			Put(Char, "char(1)").
			Put(VarChar, "varchar(MAX)").
			PutCapacity(VarChar, 8000, "varchar($l)").
			Put(NVarChar, "nvarchar(MAX)").
			PutCapacity(NVarChar, 4000, "nvarchar($l)").
			Put(Float, "float").
			Put(Double, "double precision").
			Put(Date, "date").
			Put(Time, "time").
			Put(Timestamp, "datetime2").
			Put(VarBinary, "varbinary(MAX)").
			PutCapacity(VarBinary, 8000, "varbinary($l)").
			Put(Numeric, "numeric($p,$s)").
			Put(Decimal, "numeric($p,$s)").
			Put(Blob, "varbinary(MAX)").
			Put(Clob, "varchar(MAX)").
			Put(NClob, "nvarchar(MAX)"),
		Functions: NewFunctionRegistry().
			Register("concat", VarArgsFunction{Begin: "(", Sep: "+", End: ")", Type: StringValue}).
			Register("coalesce", StandardFunction{Name: "coalesce"}).
			Register("lower", StandardFunction{Name: "lower"}).
			Register("upper", StandardFunction{Name: "upper"}).
			Register("current_timestamp", NoArgFunction{Name: "getdate", Type: TimestampValue, Parens: true}),
		Limit: OffsetFetchHandler{},
		Sequences: &SequenceSupport{
			NextVal:    "next value for %s",
			SelectFrom: "select %s",
			Create:     "create sequence %s",
			Drop:       "drop sequence %s",
			Query:      "select * from INFORMATION_SCHEMA.SEQUENCES",
			Columns: SequenceColumns{
				Name:      "sequence_name",
				Catalog:   "sequence_catalog",
				Schema:    "sequence_schema",
				Start:     "start_value",
				Min:       "minimum_value",
				Max:       "maximum_value",
				Increment: "increment",
			},
		},
		Identity: &IdentityColumnSupport{
			Supported:    true,
			ColumnString: "identity not null",
			InsertString: "default",
			KeysReturned: true,
		},
		Capabilities: Capabilities{
			Sequences:                         true,
			Limit:                             true,
			UnionAll:                          true,
			ExistsInSelect:                    true,
			ANSIJoins:                         true,
			ANSICase:                          true,
			CanCreateSchema:                   true,
			DropConstraints:                   true,
			CurrentTimestampSelection:         true,
			InExpressionCountLimit:            2100,
			MaxAliasLength:                    128,
			NativeIdentifierGeneratorStrategy: "identity",
		},
		Strings: Strings{
			CurrentTimestampSelect:   "select current_timestamp",
			CurrentTimestampFunction: "current_timestamp",
			AddColumn:                "add",
			CrossJoinSeparator:       " cross join ",
			SelectGUID:               "select newid()",
			CurrentSchema:            "select schema_name()",
		},
		Properties:  Properties{},
		Errors:      sqlServerConverter(sqlServerConstraintName),
		Constraints: sqlServerConstraintName,
	}
	// Postgres 驱动
	Postgres = &Dialect{
		Name:         "postgres",
		SupportNamed: true,
		NamedPrefix:  "$",
		PlaceHolder:  "$",
		DateFormat:   "'2006-01-02 15:04:05'",
		SQLNameFunc:  MakeNameFunc("\"", "\""),
		NameFunc:     utils.LowerCase,
		Types: NewTypeNames().
			Put(Bit, "bool").
			Put(Boolean, "boolean").
			Put(BigInt, "int8").
			Put(SmallInt, "int2").
			Put(TinyInt, "int2").
			Put(Integer, "int4").
			Put(Char, "char(1)").
			Put(VarChar, "varchar($l)").
			Put(NVarChar, "varchar($l)").
			Put(Float, "float4").
			Put(Double, "float8").
			Put(Date, "date").
			Put(Time, "time").
			Put(Timestamp, "timestamp").
			Put(VarBinary, "bytea").
			Put(Binary, "bytea").
			Put(LongVarChar, "text").
			Put(LongVarBinary, "bytea").
			Put(Clob, "text").
			Put(Blob, "oid").
			Put(Numeric, "numeric($p, $s)").
			Put(Decimal, "numeric($p, $s)"),
		Functions: NewFunctionRegistry().
			Register("concat", VarArgsFunction{Begin: "(", Sep: "||", End: ")", Type: StringValue}).
			Register("coalesce", StandardFunction{Name: "coalesce"}).
			Register("lower", StandardFunction{Name: "lower"}).
			Register("upper", StandardFunction{Name: "upper"}).
			Register("current_timestamp", NoArgFunction{Name: "now", Type: TimestampValue, Parens: true}),
		Limit: LimitOffsetHandler{WithOffset: " limit ? offset ?", WithoutOffset: " limit ?", Reverse: true},
		Locks: &LockSupport{
			ForUpdate:  " for update",
			NoWait:     " nowait",
			SkipLocked: " skip locked",
			ReadLock:   " for share",
		},
		Sequences: &SequenceSupport{
			NextVal:    "nextval ('%s')",
			SelectFrom: "select %s",
			Create:     "create sequence %s",
			Drop:       "drop sequence if exists %s",
			Query:      "select * from information_schema.sequences",
			Pooled:     true,
			Columns: SequenceColumns{
				Name:      "sequence_name",
				Catalog:   "sequence_catalog",
				Schema:    "sequence_schema",
				Start:     "start_value",
				Min:       "minimum_value",
				Max:       "maximum_value",
				Increment: "increment",
			},
		},
		Identity: &IdentityColumnSupport{
			Supported:    true,
			ColumnString: "generated by default as identity",
			InsertString: "default",
			KeysReturned: true,
			Returning:    " returning %s",
		},
		IDTable: &IDTableSupport{
			Prefix:        "HT_",
			MaxNameLength: 63,
			CreateCommand: "create temporary table",
			Options:       "on commit drop",
			DropCommand:   "drop table",
		},
		Capabilities: Capabilities{
			Sequences:                         true,
			PooledSequences:                   true,
			Limit:                             true,
			UnionAll:                          true,
			CommentOn:                         true,
			ExistsInSelect:                    true,
			PartitionBy:                       true,
			NoWait:                            true,
			SkipLocked:                        true,
			RowValueConstructorInInList:       true,
			TupleDistinctCounts:               true,
			CanCreateSchema:                   true,
			DropConstraints:                   true,
			ANSIJoins:                         true,
			ANSICase:                          true,
			RefCursorOutParameters:            true,
			CurrentTimestampSelection:         true,
			MaxAliasLength:                    63,
			NativeIdentifierGeneratorStrategy: "sequence",
		},
		Strings: Strings{
			CurrentTimestampSelect:   "select now()",
			CurrentTimestampFunction: "now",
			AddColumn:                "add column",
			CascadeConstraints:       " cascade",
			CrossJoinSeparator:       " cross join ",
			SelectGUID:               "select uuid_generate_v4()",
			CurrentSchema:            "select current_schema()",
		},
		Properties: Properties{
			PropBatchSize: "15",
		},
		Errors:      postgresConverter(postgresConstraintName),
		Constraints: postgresConstraintName,
	}
)

func MakeNameFunc(prefix, suffix string) func(any) string {
	return func(name any) string {
		return QuotedName(name, prefix, suffix)
	}
}

func QuotedName(name any, prefix, suffix string) string {
	col := ""
	switch n := name.(type) {
	case string:
		col = prefix + n + suffix
	case fmt.Stringer:
		col = prefix + n.String() + suffix
	default:
		col = fmt.Sprintf("%s%v%s", prefix, n, suffix)
	}
	return col
}
