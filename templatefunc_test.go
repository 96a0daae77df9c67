/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"os"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/meta"
	"github.com/TiberoClient/sqlmx-tibero/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tplUser struct {
	ID       int64  `sqlmx:"pk,identity"`
	TenantID int64  `sqlmx:"nullable"`
	Name     string `sqlmx:"length=64"`
	Password string `sqlmx:"ignore"`
}

func TestTemplateFunc(t *testing.T) {
	cols := utils.Must(meta.ColumnsOf(tplUser{}, utils.UpperCase))

	type args struct {
		tpl string
		arg any
	}
	tpl := template.New("tests").Funcs(MakeFuncMap(dialect.Tibero))
	_, err := tpl.ParseFS(os.DirFS("testdata/sql"), "*.sql")
	require.NoError(t, err)

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "select with filter",
			args: args{"select_users.sql", map[string]any{
				"Columns": cols,
				"Filter":  map[string]any{"Name": "o'brien"},
				"Order":   map[string]string{"ID": "desc"},
			}},
			want: `select "ID","TENANT_ID","NAME" from USERS WHERE "NAME"='o''brien'  ORDER BY "ID" desc`,
		},
		{
			name: "insert with sequence",
			args: args{"insert_user.sql", map[string]any{"Columns": cols}},
			want: `insert into USERS ("ID","TENANT_ID","NAME") values (SEQ_USER.nextval,:TENANT_ID,:NAME)`,
		},
		{
			name: "create table",
			args: args{"create_users.sql", map[string]any{"Columns": cols}},
			want: `create table USERS ("ID" number(19,0) generated as identity not null, "TENANT_ID" number(19,0), "NAME" varchar2(64 char) not null)`,
		},
		{
			name: "lock with hint",
			args: args{"lock_user.sql", map[string]any{"Columns": cols[:1]}},
			want: `select /*+ index(USERS PK_USERS) */ "ID" from USERS where not (ENABLED = 0) for update nowait`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &strings.Builder{}
			defer func() {
				if strings.HasPrefix(tt.want, "insert") {
					assertColumnsMatchValues(t, buf.String())
				}
			}()
			err := tpl.ExecuteTemplate(buf, tt.args.tpl, tt.args.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()))
		})
	}
}

// assertColumnsMatchValues checks "insert into T (a,b) values (x,y)" lists have the same arity
func assertColumnsMatchValues(t *testing.T, stmt string) {
	t.Helper()
	open := strings.Index(stmt, "(")
	mid := strings.Index(stmt, ") values (")
	require.True(t, open > 0 && mid > open, stmt)
	cols := strings.Split(stmt[open+1:mid], ",")
	vals := strings.Split(strings.TrimSuffix(strings.TrimSpace(stmt[mid+len(") values ("):]), ")"), ",")
	assert.Len(t, vals, len(cols), stmt)
}

func render(t *testing.T, d *dialect.Dialect, text string, data any) (string, error) {
	t.Helper()
	tpl, err := template.New("t").Funcs(MakeFuncMap(d)).Parse(text)
	require.NoError(t, err)
	sb := strings.Builder{}
	err = tpl.Execute(&sb, data)
	return sb.String(), err
}

func TestTemplateDialectFuncs(t *testing.T) {
	tests := []struct {
		name string
		d    *dialect.Dialect
		text string
		want string
	}{
		{"fn nvl", dialect.Tibero, `{{fn "coalesce" "A" "B" "C"}}`, "nvl(A, nvl(B, C))"},
		{"fn substring", dialect.Tibero, `{{fn "substring" "NAME" "1" "3"}}`, "substr(NAME, 1, 3)"},
		{"fn concat mysql", dialect.MySQL, `{{fn "concat" "a" "b"}}`, "concat(a, b)"},
		{"column type", dialect.Tibero, `{{columnType "varchar"}}`, "varchar2(255 char)"},
		{"column type by code", dialect.Tibero, `{{columnType "-5"}}`, "number(19,0)"},
		{"skip locked", dialect.Tibero, `{{skipLocked}}`, " for update skip locked"},
		{"for update mysql", dialect.MySQL, `{{forUpdate "pessimistic_read"}}`, " lock in share mode"},
		{"not", dialect.Tibero, `{{not "A = 1"}}`, "not (A = 1)"},
		{"no hint on mysql", dialect.MySQL, `select {{hint "x"}}1`, "select 1"},
		{"now", dialect.Tibero, `{{now}}`, "current_timestamp"},
		{"nextval postgres", dialect.Postgres, `{{nextval "seq_user"}}`, "nextval ('seq_user')"},
		{"dialect", dialect.Tibero, `{{dialect}}`, "tibero"},
		{"bool literals", dialect.Tibero, `{{v true}},{{v false}}`, "1,0"},
		{"null", dialect.Tibero, `{{v nil}}`, "NULL"},
		{"name", dialect.Tibero, `{{n "USERS"}}`, `"USERS"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(t, tt.d, tt.text, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := render(t, dialect.MySQL, `{{nextval "s"}}`, nil)
	assert.ErrorIs(t, err, dialect.ErrNoSequences)
	_, err = render(t, dialect.Tibero, `{{forUpdate "exclusive"}}`, nil)
	assert.Error(t, err)
	_, err = render(t, dialect.Tibero, `{{fn "no_such_fn"}}`, nil)
	assert.ErrorIs(t, err, dialect.ErrUnknownFunction)
}

func TestSQLValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	name := "it's"
	assert.Equal(t, "TIMESTAMP '2024-01-02 03:04:05'", sqlValue(dialect.Tibero, ts))
	assert.Equal(t, "'2024-01-02 03:04:05'", sqlValue(dialect.MySQL, &ts))
	assert.Equal(t, "'it''s'", sqlValue(dialect.Tibero, &name))
	assert.Equal(t, "TRUE", sqlValue(dialect.MySQL, true))
	assert.Equal(t, "42", sqlValue(dialect.Tibero, 42))
	assert.Equal(t, "1,'a',0", sqlValues(dialect.Tibero, []any{1, "a", false}))
	assert.Equal(t, "7", sqlValues(dialect.Tibero, 7))
}

type tplName string

type tplCode int

func TestSQLValueNamedTypes(t *testing.T) {
	evil := tplName("x' or '1'='1")
	assert.Equal(t, "'x'' or ''1''=''1'", sqlValue(dialect.Tibero, evil))
	assert.Equal(t, "'x'' or ''1''=''1'", sqlValue(dialect.Tibero, &evil))
	assert.Equal(t, "3", sqlValue(dialect.Tibero, tplCode(3)))
	assert.Equal(t, "1.5", sqlValue(dialect.Tibero, 1.5))
	assert.Equal(t, "'{it''s}'", sqlValue(dialect.Tibero, struct{ S string }{"it's"}))

	type filter struct {
		Name tplName
	}
	assert.Equal(t, ` WHERE "NAME"='x'' or ''1''=''1' `, where(dialect.Tibero, filter{Name: evil}))
	assert.Equal(t, ` WHERE "NAME"='x'' or ''1''=''1' `, where(dialect.Tibero, map[string]any{"name": evil}))
	assert.Equal(t, ` WHERE "NAME" LIKE 'bo%' `, where(dialect.Tibero, map[string]any{"name": tplName("bo%")}))
}

func TestWhere(t *testing.T) {
	type filter struct {
		TenantID int64
		Name     string
		Enabled  bool
	}
	assert.Equal(t, ` WHERE "TENANT_ID"=1 AND "NAME"='bob' `, where(dialect.Tibero, filter{TenantID: 1, Name: "bob"}))
	assert.Equal(t, ` WHERE "TENANT_ID"=1 OR "ENABLED"=1 `, whereOr(dialect.Tibero, filter{TenantID: 1, Enabled: true}))
	assert.Equal(t, ` WHERE "NAME" LIKE 'bo%' `, where(dialect.Tibero, map[string]any{"name": "bo%"}))
	assert.Equal(t, " WHERE `name`=:name ", namedWhere(dialect.MySQL, map[string]any{"name": "bob"}))
	assert.Equal(t, "", where(dialect.Tibero, nil))
}
