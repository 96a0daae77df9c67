/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/TiberoClient/sqlmx-tibero/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiberoColumnTypes(t *testing.T) {
	tests := []struct {
		name      string
		code      TypeCode
		length    int64
		precision int
		scale     int
		want      string
	}{
		{"char", Char, 1, 0, 0, "char(1 char)"},
		{"short varchar", VarChar, 100, 0, 0, "varchar2(100 char)"},
		{"varchar at capacity", VarChar, 4000, 0, 0, "varchar2(4000 char)"},
		{"long varchar", VarChar, 4001, 0, 0, "long"},
		{"nvarchar", NVarChar, 50, 0, 0, "nvarchar2(50)"},
		{"long nvarchar", LongNVarChar, 80, 0, 0, "nvarchar2(80)"},
		{"bit", Bit, 0, 0, 0, "number(1,0)"},
		{"boolean", Boolean, 0, 0, 0, "number(1,0)"},
		{"bigint", BigInt, 0, 0, 0, "number(19,0)"},
		{"smallint", SmallInt, 0, 0, 0, "number(5,0)"},
		{"tinyint", TinyInt, 0, 0, 0, "number(3,0)"},
		{"integer", Integer, 0, 0, 0, "number(10,0)"},
		{"float", Float, 0, 0, 0, "float"},
		{"double", Double, 0, 0, 0, "double precision"},
		{"numeric", Numeric, 0, 12, 4, "number(12,4)"},
		{"decimal", Decimal, 0, 19, 2, "number(19,2)"},
		{"date", Date, 0, 0, 0, "date"},
		{"time", Time, 0, 0, 0, "date"},
		{"timestamp", Timestamp, 0, 0, 0, "timestamp"},
		{"binary", Binary, 2000, 0, 0, "raw(2000)"},
		{"long binary", Binary, 2001, 0, 0, "long raw"},
		{"varbinary", VarBinary, 16, 0, 0, "raw(16)"},
		{"long varbinary", VarBinary, 1 << 20, 0, 0, "long raw"},
		{"blob", Blob, 0, 0, 0, "blob"},
		{"clob", Clob, 0, 0, 0, "clob"},
		{"longvarchar", LongVarChar, 0, 0, 0, "long"},
		{"longvarbinary", LongVarBinary, 0, 0, 0, "long raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tibero.ColumnType(tt.code, tt.length, tt.precision, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := Tibero.DefaultColumnType(VarChar)
	require.NoError(t, err)
	assert.Equal(t, "varchar2(255 char)", got)

	_, err = Tibero.ColumnType(Other, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoColumnType)

	assert.Equal(t, Bit, Tibero.SQLType(Boolean))
	assert.Equal(t, VarChar, Tibero.SQLType(VarChar))
}

func TestParseTypeCode(t *testing.T) {
	code, err := ParseTypeCode("varchar")
	require.NoError(t, err)
	assert.Equal(t, VarChar, code)

	code, err = ParseTypeCode("93")
	require.NoError(t, err)
	assert.Equal(t, Timestamp, code)

	_, err = ParseTypeCode("geometry")
	assert.ErrorIs(t, err, ErrNoColumnType)
}

func TestTiberoFunctions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"abs", []string{"x"}, "abs(x)"},
		{"SUBSTRING", []string{"name", "1", "3"}, "substr(name, 1, 3)"},
		{"str", []string{"id"}, "to_char(id)"},
		{"locate", []string{"'a'", "name"}, "instr(name,'a')"},
		{"bit_length", []string{"name"}, "vsize(name)*8"},
		{"concat", []string{"a", "b", "c"}, "a||b||c"},
		{"coalesce", []string{"a"}, "a"},
		{"coalesce", []string{"a", "b"}, "nvl(a, b)"},
		{"coalesce", []string{"a", "b", "c"}, "nvl(a, nvl(b, c))"},
		{"sysdate", nil, "sysdate"},
		{"current_time", nil, "current_timestamp"},
		{"rownum", nil, "rownum"},
		{"months_between", []string{"a", "b"}, "months_between(a, b)"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.name, len(tt.args)), func(t *testing.T) {
			got, err := Tibero.RenderFunction(tt.name, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Tibero.RenderFunction("sysdate", "x")
	assert.Error(t, err)
	_, err = Tibero.RenderFunction("locate", "x")
	assert.Error(t, err)
	_, err = Tibero.RenderFunction("coalesce")
	assert.Error(t, err)
	_, err = Tibero.RenderFunction("no_such_fn")
	assert.ErrorIs(t, err, ErrUnknownFunction)

	fn, ok := Tibero.Functions.Lookup("to_date")
	require.True(t, ok)
	assert.Equal(t, TimestampValue, fn.ReturnType())
	assert.Contains(t, Tibero.Functions.Names(), "add_months")
}

func TestRownumLimit(t *testing.T) {
	h := RownumLimitHandler{}
	tests := []struct {
		name string
		sql  string
		sel  *RowSelection
		want string
		args []any
	}{
		{
			name: "first page",
			sql:  "select id from users",
			sel:  Selection(0, 10),
			want: "select * from ( select id from users ) where rownum <= ?",
			args: []any{10},
		},
		{
			name: "with offset",
			sql:  "  select id from users order by id  ",
			sel:  Selection(20, 10),
			want: "select * from ( select row_.*, rownum rownum_ from ( select id from users order by id ) row_ where rownum <= ?) where rownum_ > ?",
			args: []any{30, 20},
		},
		{
			name: "for update moved outside",
			sql:  "select id from users where id > 1 for update of id nowait",
			sel:  Selection(5, 5),
			want: "select * from ( select row_.*, rownum rownum_ from ( select id from users where id > 1 ) row_ where rownum <= ?) where rownum_ > ? for update of id nowait",
			args: []any{10, 5},
		},
		{
			name: "upper case for update",
			sql:  "select id from users FOR UPDATE",
			sel:  Selection(0, 1),
			want: "select * from ( select id from users ) where rownum <= ? FOR UPDATE",
			args: []any{1},
		},
		{
			name: "no max rows",
			sql:  "select id from users",
			sel:  Selection(10, 0),
			want: "select id from users",
		},
		{
			name: "nil selection",
			sql:  "select id from users",
			want: "select id from users",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ProcessSQL(tt.sql, tt.sel))
			assert.Equal(t, tt.args, h.LimitArgs(tt.sel))
		})
	}

	assert.Equal(t, "select * from ( select 1 from dual ) where rownum <= ?", RownumLimitString("select 1 from dual", false))
	assert.True(t, h.BindLimitParametersInReverseOrder())
	assert.True(t, h.UseMaxForLimit())
	assert.False(t, h.BindLimitParametersFirst())
}

func TestDialectLimitSQL(t *testing.T) {
	sql, args := Tibero.LimitSQL("select * from t where a = ?", PageSelection(3, 10))
	assert.Equal(t, "select * from ( select row_.*, rownum rownum_ from ( select * from t where a = ? ) row_ where rownum <= ?) where rownum_ > ?", sql)
	assert.Equal(t, []any{"x", 30, 20}, Tibero.BindLimitArgs([]any{"x"}, args))

	sql, args = MySQL.LimitSQL("select * from t", Selection(20, 10))
	assert.Equal(t, "select * from t limit ?, ?", sql)
	assert.Equal(t, []any{20, 10}, args)

	sql, args = Postgres.LimitSQL("select * from t", Selection(20, 10))
	assert.Equal(t, "select * from t limit ? offset ?", sql)
	assert.Equal(t, []any{10, 20}, args)

	sql, args = SQLServer.LimitSQL("select * from t", Selection(0, 10))
	assert.Equal(t, "select * from t order by (select 0) offset 0 rows fetch next ? rows only", sql)
	assert.Equal(t, []any{10}, args)

	sql, _ = SQLServer.LimitSQL("select * from t order by id", Selection(5, 10))
	assert.Equal(t, "select * from t order by id offset ? rows fetch next ? rows only", sql)

	sql, args = (&Dialect{}).LimitSQL("select 1", Selection(1, 1))
	assert.Equal(t, "select 1", sql)
	assert.Nil(t, args)

	assert.Equal(t, "select count(*) from ( select * from t ) count_", CountSQL(" select * from t "))
}

func TestTiberoLocks(t *testing.T) {
	l := Tibero.Locks
	assert.Equal(t, " for update", l.ForUpdateString())
	assert.Equal(t, " for update", l.ForUpdateStringOf("u.id"))
	assert.Equal(t, " for update nowait", l.ForUpdateNowaitString())
	assert.Equal(t, " for update of u.id nowait", l.ForUpdateNowaitStringOf("u.id"))
	assert.Equal(t, " for update skip locked", l.ForUpdateSkipLockedString())
	assert.Equal(t, " for update of u.id skip locked", l.ForUpdateSkipLockedStringOf("u.id"))

	assert.Equal(t, " for update skip locked", Tibero.WriteLockString(SkipLocked))
	assert.Equal(t, " for update", Tibero.WriteLockString(WaitForever))
	assert.Equal(t, " for update", Tibero.WriteLockString(3000))
	assert.Equal(t, " for update of u.id skip locked", l.WriteLockStringOf("u.id", SkipLocked))
	assert.Equal(t, " for update", l.WriteLockStringOf("u.id", NoWait))
	assert.Equal(t, Tibero.WriteLockString(SkipLocked), Tibero.ReadLockString(SkipLocked))
	assert.Equal(t, Tibero.WriteLockString(NoWait), Tibero.ReadLockString(NoWait))
	assert.True(t, l.OfColumns)

	assert.Equal(t, " for update", Tibero.ForUpdate(LockUpgrade, WaitForever, ""))
	assert.Equal(t, " for update nowait", Tibero.ForUpdate(LockUpgradeNoWait, WaitForever, ""))
	assert.Equal(t, " for update of a.id nowait", Tibero.ForUpdate(LockPessimisticForceIncrement, WaitForever, "a.id"))
	assert.Equal(t, " for update skip locked", Tibero.ForUpdate(LockUpgradeSkipLocked, WaitForever, ""))
	assert.Equal(t, " for update of a.id skip locked", Tibero.ForUpdate(LockPessimisticWrite, SkipLocked, "a.id"))
	assert.Equal(t, " for update", Tibero.ForUpdate(LockPessimisticRead, WaitForever, "a.id"))
	assert.Equal(t, "", Tibero.ForUpdate(LockOptimistic, WaitForever, ""))
	assert.Equal(t, "", Tibero.ForUpdate(LockNone, WaitForever, "a.id"))

	assert.Equal(t, " lock in share mode", MySQL.ReadLockString(WaitForever))
	assert.Equal(t, "", SQLServer.ForUpdate(LockUpgrade, WaitForever, ""))

	m, err := ParseLockMode("UPGRADE_NOWAIT")
	require.NoError(t, err)
	assert.Equal(t, LockUpgradeNoWait, m)
	_, err = ParseLockMode("exclusive")
	assert.Error(t, err)

	assert.False(t, LockRead.Pessimistic())
	assert.False(t, LockOptimisticForceIncrement.Pessimistic())
	assert.True(t, LockUpgrade.Pessimistic())
	assert.True(t, LockPessimisticForceIncrement.Pessimistic())
}

func TestTiberoSequences(t *testing.T) {
	s := Tibero.Sequences
	assert.Equal(t, "select seq_user.nextval from dual", s.NextValString("seq_user"))
	assert.Equal(t, "seq_user.nextval", s.SelectNextValString("seq_user"))
	assert.Equal(t, "create sequence seq_user", s.CreateSequenceString("seq_user"))
	assert.Equal(t, "drop sequence seq_user", s.DropSequenceString("seq_user"))
	assert.Equal(t, "select * from all_sequences", s.Query)

	assert.Equal(t, "create sequence s minvalue -10 start with -10 increment by 1", s.CreateSequenceStringWith("s", -10, 1))
	assert.Equal(t, "create sequence s maxvalue 10 start with 10 increment by -1", s.CreateSequenceStringWith("s", 10, -1))
	assert.Equal(t, "create sequence s start with 1 increment by 50", s.CreateSequenceStringWith("s", 1, 50))
	assert.Equal(t, "create sequence s start with -5 increment by -1", s.CreateSequenceStringWith("s", -5, -1))
	// one space between every word, never "increment  by"
	withOptions := s.CreateSequenceStringWith("S", 1, 1)
	assert.Equal(t, "create sequence S start with 1 increment by 1", withOptions)
	assert.NotContains(t, withOptions, "  ")
	assert.True(t, s.Pooled)
	assert.Equal(t, "sequence", Tibero.Capabilities.NativeIdentifierGeneratorStrategy)
}

func TestScanSequence(t *testing.T) {
	s := Tibero.Sequences
	info, err := s.ScanSequence(map[string]any{
		"SEQUENCE_OWNER": "APP",
		"SEQUENCE_NAME":  []byte("SEQ_USER"),
		"MIN_VALUE":      int64(1),
		"MAX_VALUE":      []byte("999999999999999999999999999"),
		"INCREMENT_BY":   "50",
		"CACHE_SIZE":     int64(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "SEQ_USER", info.Name)
	assert.Equal(t, "", info.Schema)
	assert.Nil(t, info.StartValue)
	require.NotNil(t, info.MinValue)
	assert.EqualValues(t, 1, *info.MinValue)
	require.NotNil(t, info.MaxValue)
	assert.EqualValues(t, int64(9223372036854775807), *info.MaxValue)
	require.NotNil(t, info.IncrementBy)
	assert.EqualValues(t, 50, *info.IncrementBy)

	info, err = s.ScanSequence(map[string]any{"sequence_name": "S", "max_value": 100.0, "min_value": nil})
	require.NoError(t, err)
	assert.Nil(t, info.MinValue)
	assert.EqualValues(t, 100, *info.MaxValue)

	_, err = s.ScanSequence(map[string]any{"min_value": 1})
	assert.Error(t, err)
	_, err = s.ScanSequence(map[string]any{"sequence_name": "S", "max_value": "abc"})
	assert.Error(t, err)

	assert.NotPanics(t, func() {
		_, err = s.ScanSequence(map[string]any{"sequence_name": "S", "max_value": math.NaN()})
	})
	assert.Error(t, err)
	info, err = s.ScanSequence(map[string]any{"sequence_name": "S", "min_value": math.Inf(-1), "increment_by": float32(2)})
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MinInt64), *info.MinValue)
	assert.EqualValues(t, 2, *info.IncrementBy)
}

func TestTiberoIdentity(t *testing.T) {
	id := Tibero.Identity
	col, err := id.IdentityColumnString(BigInt)
	require.NoError(t, err)
	assert.Equal(t, "generated as identity", col)
	assert.Equal(t, "default", id.InsertString)
	assert.True(t, id.InsertSelect)

	keys, err := id.GeneratedKeys([]string{"ID"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID"}, keys)

	_, err = id.GeneratedKeys([]string{"TENANT_ID", "ID"})
	assert.ErrorIs(t, err, ErrMultiColumnKey)

	var none *IdentityColumnSupport
	_, err = none.IdentityColumnString(BigInt)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestStatementType(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"select * from dual", "select"},
		{"  insert into t values (1)", "insert"},
		{"/* tag */ update t set a = 1", "update"},
		{"/* multi\nline */\ndelete from t", "delete"},
		{"SELECT 1 FROM DUAL", "SELECT"},
	}
	for _, tt := range tests {
		got, err := StatementType(tt.sql)
		require.NoError(t, err, tt.sql)
		assert.Equal(t, tt.want, got)
	}
	_, err := StatementType("merge into t using s on (1=1)")
	assert.ErrorIs(t, err, ErrStatementType)
	_, err = StatementType("select*from dual")
	assert.ErrorIs(t, err, ErrStatementType)
}

func TestQueryHint(t *testing.T) {
	got, err := Tibero.QueryHint("select * from users", "index(users idx_name)")
	require.NoError(t, err)
	assert.Equal(t, "select /*+ index(users idx_name) */ * from users", got)

	got, err = Tibero.QueryHint("/* select */ update users set a = 1", "parallel(4)")
	require.NoError(t, err)
	assert.Equal(t, "/* select */ update /*+ parallel(4) */ users set a = 1", got)

	got, err = Tibero.QueryHint("select 1 from dual", "  ")
	require.NoError(t, err)
	assert.Equal(t, "select 1 from dual", got)

	_, err = Tibero.QueryHint("call proc()", "x")
	assert.ErrorIs(t, err, ErrStatementType)

	got, err = MySQL.QueryHint("select 1", "x")
	require.NoError(t, err)
	assert.Equal(t, "select 1", got)
}

func TestFollowOnLocking(t *testing.T) {
	assert.True(t, Tibero.UseFollowOnLocking("select distinct a from t", nil))
	assert.True(t, Tibero.UseFollowOnLocking("select a from t GROUP BY a", nil))
	assert.True(t, Tibero.UseFollowOnLocking("select a from t union select a from s", nil))
	assert.True(t, Tibero.UseFollowOnLocking("select a from t order by a", nil))
	assert.False(t, Tibero.UseFollowOnLocking("select a from t", nil))
	assert.False(t, Tibero.UseFollowOnLocking("select a from t", &RowSelection{}))
	assert.True(t, Tibero.UseFollowOnLocking("select a from t", Selection(0, 10)))
	assert.False(t, Tibero.UseFollowOnLocking("select distinct_value from t", nil))
	assert.False(t, MySQL.UseFollowOnLocking("select distinct a from t", nil))
}

func TestTiberoIDTable(t *testing.T) {
	s := Tibero.IDTable
	assert.Equal(t, "HT_users", s.TableName("users"))
	long := strings.Repeat("x", 40)
	assert.Len(t, s.TableName(long), 30)
	wide := s.TableName("a" + strings.Repeat("가", 13))
	assert.Equal(t, "HT_a"+strings.Repeat("가", 8), wide)
	assert.True(t, utf8.ValidString(wide))
	assert.Equal(t, "create global temporary table HT_users (id number(19,0) not null) on commit delete rows",
		s.CreateSQL("users", []string{"id number(19,0) not null"}))
	assert.Equal(t, "delete from HT_users", s.CleanupSQL("users"))
	assert.Equal(t, "drop table HT_users", Postgres.IDTable.CleanupSQL("users"))
}

func TestTiberoFacts(t *testing.T) {
	c := Tibero.Capabilities
	assert.True(t, c.Sequences)
	assert.True(t, c.Limit)
	assert.False(t, c.EmptyInList)
	assert.False(t, c.ExistsInSelect)
	assert.False(t, c.TupleDistinctCounts)
	assert.False(t, c.CanCreateSchema)
	assert.False(t, c.DropConstraints)
	assert.Equal(t, 1000, c.InExpressionCountLimit)
	assert.Equal(t, 20, c.MaxAliasLength)

	s := Tibero.Strings
	assert.Equal(t, "select systimestamp from dual", s.CurrentTimestampSelect)
	assert.Equal(t, " cross join ", s.CrossJoinSeparator)
	assert.Equal(t, "select rawtohex(sys_guid()) from dual", s.SelectGUID)
	assert.Equal(t, " cascade constraints", s.CascadeConstraints)

	assert.Equal(t, "not (a = 1)", Tibero.NotExpression("a = 1"))
	assert.Equal(t, "null", Tibero.SelectClauseNullString(VarChar))
	assert.Equal(t, "null", MySQL.SelectClauseNullString(VarChar))
	assert.Equal(t, "1", Tibero.Keyword("TRUE"))
	assert.Equal(t, " AND ", Tibero.KeywordWithSpace("AND"))
	assert.Equal(t, "odbc", Tibero.Driver())
	assert.Equal(t, "mysql", MySQL.Driver())
	assert.Equal(t, `"USERS"`, Tibero.SQLNameFunc("USERS"))
}

func TestTiberoProperties(t *testing.T) {
	p := Tibero.Properties
	assert.Equal(t, 15, p.Int(PropBatchSize, 0))
	assert.True(t, p.Bool(PropUseGetGeneratedKeys, false))
	assert.True(t, p.Bool(PropUseStreamsForBinary, false))
	assert.False(t, p.Bool(PropBatchVersionedData, true))
	assert.Equal(t, 7, p.Int("missing", 7))

	over, err := LoadProperties(strings.NewReader("jdbc:\n  batch_size: 50\n  use_get_generated_keys: false\nfetch_size: 100\n"))
	require.NoError(t, err)
	merged := p.Clone().Merge(over)
	assert.Equal(t, 50, merged.Int(PropBatchSize, 0))
	assert.False(t, merged.Bool(PropUseGetGeneratedKeys, true))
	assert.Equal(t, "100", merged.Get("fetch_size"))
	assert.Equal(t, 15, p.Int(PropBatchSize, 0), "shared dialect properties must not change")
	assert.Equal(t, []string{"fetch_size", PropBatchSize, PropBatchVersionedData, PropUseGetGeneratedKeys, PropUseStreamsForBinary}, merged.Keys())

	empty, err := LoadProperties(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = LoadProperties(strings.NewReader("a: [1"))
	assert.Error(t, err)
}

type tiberoErr struct {
	code int
	msg  string
}

func (e tiberoErr) Error() string  { return e.msg }
func (e tiberoErr) ErrorCode() int { return e.code }

func TestTiberoConvertError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		target     error
		constraint string
	}{
		{"lock wait timeout", tiberoErr{30006, "resource busy"}, sqlerr.ErrLockTimeout, ""},
		{"nowait busy", errors.New("TBR-00054: resource busy and acquire with NOWAIT specified"), sqlerr.ErrLockTimeout, ""},
		{"cache pin", tiberoErr{-4021, "timeout"}, sqlerr.ErrLockTimeout, ""},
		{"deadlock", tiberoErr{60, "deadlock detected"}, sqlerr.ErrLockAcquisition, ""},
		{"cache lock", tiberoErr{4020, "deadlock"}, sqlerr.ErrLockAcquisition, ""},
		{"cancel", tiberoErr{1013, "user requested cancel"}, sqlerr.ErrQueryTimeout, ""},
		{"update to null", tiberoErr{1407, "cannot update (APP.USERS.NAME) to NULL"}, sqlerr.ErrConstraintViolation, ""},
		{"unique", tiberoErr{1, "unique constraint (APP.PK_USERS) violated"}, sqlerr.ErrConstraintViolation, "APP.PK_USERS"},
		{"parent key", errors.New("ORA-02291: integrity constraint (APP.FK_TENANT) violated - parent key not found"), sqlerr.ErrConstraintViolation, "APP.FK_TENANT"},
		{"child record", tiberoErr{2292, "integrity constraint (APP.FK_ROLE) violated"}, sqlerr.ErrConstraintViolation, "APP.FK_ROLE"},
		{"insert null", tiberoErr{1400, "cannot insert NULL into (APP.USERS.ID)"}, sqlerr.ErrConstraintViolation, ""},
		{"odbc state", errors.New("SQLExecute: {23000} [Tibero] check violated"), sqlerr.ErrConstraintViolation, ""},
		{"unknown", tiberoErr{942, "table or view does not exist"}, sqlerr.ErrGeneric, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Tibero.ConvertError(tt.err, "", "insert into users values (?)")
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.constraint, sqlerr.ConstraintName(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Equal(t, "APP.PK_USERS", Tibero.ConstraintName(fmt.Errorf("exec: %w", tiberoErr{1, "unique constraint (APP.PK_USERS) violated"})))
	assert.Equal(t, "", Tibero.ConstraintName(tiberoErr{1400, "cannot insert NULL into (APP.USERS.ID)"}))
	assert.Equal(t, "", Tibero.ConstraintName(nil))
	assert.NoError(t, Tibero.ConvertError(nil, "", ""))
}
