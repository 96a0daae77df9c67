/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/TiberoClient/sqlmx-tibero"
	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/cookieY/sqlx"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, opts *Options, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()
	if opts == nil {
		opts = &Options{}
	}
	cmd := newRootCommand(opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLimitCommand(t *testing.T) {
	out, err := execute(t, nil, "limit", "select id from users order by id", "--first", "20", "--max", "10", "--count")
	require.NoError(t, err)
	assert.Equal(t, `sql: select * from ( select row_.*, rownum rownum_ from ( select id from users order by id ) row_ where rownum <= ?) where rownum_ > ?
args: [30 20]
count: select count(*) from ( select id from users order by id ) count_
`, out)

	out, err = execute(t, nil, "--dialect", "mysql", "limit", "select * from t", "--max", "10")
	require.NoError(t, err)
	assert.Equal(t, "sql: select * from t limit ?\nargs: [10]\n", out)

	_, err = execute(t, nil, "--dialect", "db2", "limit", "select 1")
	assert.ErrorIs(t, err, sqlmx.ErrUnknownDialect)
}

func TestHintAndLockCommands(t *testing.T) {
	out, err := execute(t, nil, "hint", "select * from users", "index(users pk_users)")
	require.NoError(t, err)
	assert.Equal(t, "select /*+ index(users pk_users) */ * from users\n", out)

	out, err = execute(t, nil, "lock", "--mode", "upgrade_nowait")
	require.NoError(t, err)
	assert.Equal(t, "for update nowait\n", out)

	out, err = execute(t, nil, "lock", "select id from users where id = ?", "--mode", "pessimistic_write", "--timeout", "-2", "--aliases", "id")
	require.NoError(t, err)
	assert.Equal(t, "select id from users where id = ? for update of id skip locked\n", out)

	out, err = execute(t, nil, "lock", "select distinct tenant_id from users")
	require.NoError(t, err)
	assert.Equal(t, "follow-on locking: true\n", out)

	out, err = execute(t, nil, "lock", "select distinct tenant_id from users", "--mode", "optimistic")
	require.NoError(t, err)
	assert.Equal(t, "select distinct tenant_id from users\n", out)

	_, err = execute(t, nil, "lock", "--mode", "exclusive")
	assert.Error(t, err)
}

func TestTypeAndFnCommands(t *testing.T) {
	out, err := execute(t, nil, "type", "varchar", "--length", "64")
	require.NoError(t, err)
	assert.Equal(t, "column: varchar2(64 char)\n", out)

	out, err = execute(t, nil, "type", "bigint")
	require.NoError(t, err)
	assert.Equal(t, "column: number(19,0)\n", out)

	_, err = execute(t, nil, "type", "geometry")
	assert.ErrorIs(t, err, dialect.ErrNoColumnType)

	out, err = execute(t, nil, "fn", "substring", "NAME", "1", "3")
	require.NoError(t, err)
	assert.Equal(t, "substr(NAME, 1, 3)\n", out)

	out, err = execute(t, nil, "fn", "--list")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "nvl")

	_, err = execute(t, nil, "fn")
	assert.Error(t, err)
	_, err = execute(t, nil, "fn", "no_such_fn")
	assert.ErrorIs(t, err, dialect.ErrUnknownFunction)
}

func TestSequenceCommand(t *testing.T) {
	out, err := execute(t, nil, "sequence", "create", "SEQ_USER")
	require.NoError(t, err)
	assert.Equal(t, "create sequence SEQ_USER\n", out)

	out, err = execute(t, nil, "sequence", "create", "SEQ_USER", "--start", "-10", "--increment", "5")
	require.NoError(t, err)
	assert.Equal(t, "create sequence SEQ_USER minvalue -10 start with -10 increment by 5\n", out)

	out, err = execute(t, nil, "sequence", "drop", "SEQ_USER")
	require.NoError(t, err)
	assert.Equal(t, "drop sequence SEQ_USER\n", out)

	out, err = execute(t, nil, "sequence", "next", "SEQ_USER")
	require.NoError(t, err)
	assert.Equal(t, "select: select SEQ_USER.nextval from dual\nexpression: SEQ_USER.nextval\n", out)

	_, err = execute(t, nil, "--dialect", "mysql", "sequence", "next", "SEQ_USER")
	assert.ErrorIs(t, err, dialect.ErrNoSequences)
}

func TestIDTableCommand(t *testing.T) {
	out, err := execute(t, nil, "idtable", "USERS", "id", "tenantId:integer")
	require.NoError(t, err)
	assert.Equal(t, "create: create global temporary table HT_USERS (\"ID\" number(19,0) not null, \"TENANT_ID\" number(10,0) not null) on commit delete rows\n"+
		"cleanup: delete from HT_USERS\n", out)

	out, err = execute(t, nil, "--dialect", "mysql", "idtable", "users", "id")
	require.NoError(t, err)
	assert.Contains(t, out, "cleanup: drop temporary table HT_users\n")

	_, err = execute(t, nil, "--dialect", "mssql", "idtable", "users", "id")
	assert.ErrorIs(t, err, dialect.ErrNoIDTable)
	_, err = execute(t, nil, "idtable", "USERS", "id:nope")
	assert.ErrorIs(t, err, dialect.ErrNoColumnType)
}

func TestPropsAndErrCodeCommands(t *testing.T) {
	out, err := execute(t, nil, "props", dialect.PropBatchSize)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)

	out, err = execute(t, nil, "props")
	require.NoError(t, err)
	assert.Contains(t, out, "jdbc.use_get_generated_keys: true\n")

	_, err = execute(t, nil, "props", "jdbc.nope")
	assert.Error(t, err)

	out, err = execute(t, nil, "errcode", "unique constraint (APP.PK_USERS) violated", "--code", "1")
	require.NoError(t, err)
	assert.Equal(t, "kind: constraint violation\ncode: 1\nconstraint: APP.PK_USERS\n", out)

	out, err = execute(t, nil, "errcode", "TBR-00054: resource busy")
	require.NoError(t, err)
	assert.Equal(t, "kind: lock timeout\ncode: 54\n", out)

	out, err = execute(t, nil, "errcode", "connection refused")
	require.NoError(t, err)
	assert.Equal(t, "kind: database error\n", out)
}

func TestDialectsAndVersionCommands(t *testing.T) {
	out, err := execute(t, nil, "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "DRIVER")
	assert.Contains(t, out, "tibero")
	assert.Contains(t, out, "odbc")
	assert.Contains(t, out, "*")

	out, err = execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlmx-tibero version dev")
}

func TestDBCommand(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	opts := &Options{Open: func(d *dialect.Dialect, dsn string) (*sqlmx.DB, error) {
		assert.Equal(t, "DSN=TIBERO", dsn)
		return sqlmx.NewDB(sqlx.NewDb(conn, "sqlmock"), d), nil
	}}
	t.Setenv("SQLMX_DSN", "DSN=TIBERO")

	mock.ExpectQuery("select rawtohex(sys_guid()) from dual").
		WillReturnRows(sqlmock.NewRows([]string{"GUID"}).AddRow("0A1B2C"))
	mock.ExpectClose()
	out, err := execute(t, opts, "db", "guid")
	require.NoError(t, err)
	assert.Equal(t, "0A1B2C\n", out)
	assert.NoError(t, mock.ExpectationsWereMet())

	conn, mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	mock.ExpectQuery("select * from all_sequences").
		WillReturnRows(sqlmock.NewRows([]string{"SEQUENCE_NAME", "MIN_VALUE", "MAX_VALUE", "INCREMENT_BY"}).
			AddRow("SEQ_USER", 1, 100, 1))
	mock.ExpectClose()
	out, err = execute(t, opts, "db", "sequences")
	require.NoError(t, err)
	assert.Contains(t, out, "INCREMENT")
	assert.Contains(t, out, "SEQ_USER")
	assert.Contains(t, out, "100")
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Setenv("SQLMX_DSN", "")
	t.Setenv("DATABASE_URL", "")
	_, err = execute(t, opts, "db", "now")
	assert.ErrorIs(t, err, errNoDSN)
}
