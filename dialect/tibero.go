/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"github.com/TiberoClient/sqlmx-tibero/utils"
)

// Tibero Tibero数据库方言，通过 ODBC 驱动连接
var Tibero = newTibero()

func newTibero() *Dialect {
	return &Dialect{
		Name:         "tibero",
		DriverName:   "odbc",
		SupportNamed: true,
		NamedPrefix:  ":",
		PlaceHolder:  "?",
		DateFormat:   "TIMESTAMP '2006-01-02 15:04:05'",
		SQLNameFunc:  MakeNameFunc("\"", "\""),
		NameFunc:     utils.UpperCase,
		// no boolean literals, booleans are number(1,0)
		Keywords: map[string]string{
			"TRUE":  "1",
			"FALSE": "0",
		},
		Types:            tiberoTypes(),
		SQLTypeOverrides: map[TypeCode]TypeCode{Boolean: Bit},
		Functions:        tiberoFunctions(),
		Limit:            RownumLimitHandler{},
		Locks: &LockSupport{
			ForUpdate:  " for update",
			NoWait:     " nowait",
			SkipLocked: " skip locked",
			OfColumns:  true,
		},
		Sequences: &SequenceSupport{
			NextVal:    "%s.nextval",
			SelectFrom: "select %s from dual",
			Create:     "create sequence %s",
			Drop:       "drop sequence %s",
			Query:      "select * from all_sequences",
			Pooled:     true,
			Columns: SequenceColumns{
				Name:      "sequence_name",
				Min:       "min_value",
				Max:       "max_value",
				Increment: "increment_by",
			},
		},
		Identity: &IdentityColumnSupport{
			Supported:    true,
			InsertSelect: true,
			ColumnString: "generated as identity",
			InsertString: "default",
			KeysReturned: true,
		},
		IDTable: &IDTableSupport{
			Prefix:        "HT_",
			MaxNameLength: 30,
			CreateCommand: "create global temporary table",
			Options:       "on commit delete rows",
			DropCommand:   "drop table",
			CleanAfterUse: true,
		},
		Capabilities: Capabilities{
			Sequences:                         true,
			PooledSequences:                   true,
			Limit:                             true,
			UnionAll:                          true,
			CommentOn:                         true,
			CurrentTimestampSelection:         true,
			CurrentTimestampCallable:          false,
			EmptyInList:                       false,
			ExistsInSelect:                    false,
			ForceLobAsLastValue:               true,
			PartitionBy:                       true,
			NoWait:                            true,
			SkipLocked:                        true,
			RowValueConstructorInInList:       true,
			TupleDistinctCounts:               false,
			CanCreateSchema:                   false,
			DropConstraints:                   false,
			ANSIJoins:                         true,
			ANSICase:                          true,
			RefCursorOutParameters:            true,
			QueryHints:                        true,
			FollowOnLocking:                   true,
			InExpressionCountLimit:            1000,
			MaxAliasLength:                    20,
			NativeIdentifierGeneratorStrategy: "sequence",
		},
		Strings: Strings{
			CurrentTimestampSelect:   "select systimestamp from dual",
			CurrentTimestampFunction: "current_timestamp",
			AddColumn:                "add",
			CascadeConstraints:       " cascade constraints",
			CrossJoinSeparator:       " cross join ",
			SelectGUID:               "select rawtohex(sys_guid()) from dual",
			CurrentSchema:            "SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL",
			NullSelect:               "null",
		},
		Properties: Properties{
			PropUseStreamsForBinary: "true",
			PropBatchSize:           "15",
			PropBatchVersionedData:  "false",
			PropUseGetGeneratedKeys: "true",
		},
		Errors:      tiberoConverter(tiberoConstraintName),
		Constraints: tiberoConstraintName,
	}
}

func tiberoTypes() *TypeNames {
	return NewTypeNames().
		// character
		Put(Char, "char(1 char)").
		PutCapacity(VarChar, 4000, "varchar2($l char)").
		Put(VarChar, "long").
		Put(NVarChar, "nvarchar2($l)").
		Put(LongNVarChar, "nvarchar2($l)").
		// numeric
		Put(Bit, "number(1,0)").
		Put(BigInt, "number(19,0)").
		Put(SmallInt, "number(5,0)").
		Put(TinyInt, "number(3,0)").
		Put(Integer, "number(10,0)").
		Put(Float, "float").
		Put(Double, "double precision").
		Put(Numeric, "number($p,$s)").
		Put(Decimal, "number($p,$s)").
		Put(Boolean, "number(1,0)").
		// date/time
		Put(Date, "date").
		Put(Time, "date").
		Put(Timestamp, "timestamp").
		// large objects
		PutCapacity(Binary, 2000, "raw($l)").
		Put(Binary, "long raw").
		PutCapacity(VarBinary, 2000, "raw($l)").
		Put(VarBinary, "long raw").
		Put(Blob, "blob").
		Put(Clob, "clob").
		Put(LongVarChar, "long").
		Put(LongVarBinary, "long raw")
}

func tiberoFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	std := func(name string, t ValueType) {
		r.Register(name, StandardFunction{Name: name, Type: t})
	}
	noArg := func(name string, t ValueType) {
		r.Register(name, NoArgFunction{Name: name, Type: t})
	}

	std("abs", Unspecified)
	std("sign", IntegerValue)
	for _, name := range []string{"acos", "asin", "atan", "cos", "cosh", "exp", "ln", "sin", "sinh", "stddev", "sqrt", "tan", "tanh", "variance"} {
		std(name, DoubleValue)
	}
	std("bitand", Unspecified)

	for _, name := range []string{"round", "trunc", "ceil", "floor"} {
		std(name, Unspecified)
	}

	std("chr", CharacterValue)
	for _, name := range []string{"initcap", "lower", "ltrim", "rtrim", "soundex", "upper"} {
		std(name, Unspecified)
	}
	std("ascii", IntegerValue)

	std("to_char", StringValue)
	std("to_date", TimestampValue)

	noArg("current_date", DateValue)
	r.Register("current_time", NoArgFunction{Name: "current_timestamp", Type: TimeValue})
	noArg("current_timestamp", TimestampValue)

	std("last_day", DateValue)
	noArg("sysdate", DateValue)
	noArg("systimestamp", TimestampValue)
	noArg("uid", IntegerValue)
	noArg("user", StringValue)

	noArg("rowid", LongValue)
	noArg("rownum", LongValue)

	r.Register("concat", VarArgsFunction{Begin: "", Sep: "||", End: "", Type: StringValue})
	std("instr", IntegerValue)
	std("instrb", IntegerValue)
	for _, name := range []string{"lpad", "replace", "rpad", "substr", "substrb", "translate"} {
		std(name, StringValue)
	}

	r.Register("substring", StandardFunction{Name: "substr", Type: StringValue})
	r.Register("locate", TemplateFunction{Template: "instr(?2,?1)", Type: IntegerValue})
	r.Register("bit_length", TemplateFunction{Template: "vsize(?1)*8", Type: IntegerValue})
	r.Register("coalesce", NvlFunction{})

	std("atan2", FloatValue)
	std("log", IntegerValue)
	std("mod", IntegerValue)
	std("nvl", Unspecified)
	std("nvl2", Unspecified)
	std("power", FloatValue)

	std("add_months", DateValue)
	std("months_between", FloatValue)
	std("next_day", DateValue)

	r.Register("str", StandardFunction{Name: "to_char", Type: StringValue})
	return r
}
