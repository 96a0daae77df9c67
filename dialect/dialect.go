/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"github.com/TiberoClient/sqlmx-tibero/sqlerr"
)

type Dialect struct {
	//方言名称（tibero/mysql/mssql）等
	Name string
	//database/sql 驱动名称，为空时与 Name 相同
	DriverName string
	//是否使用命名参数
	SupportNamed bool
	//命名参数前缀
	NamedPrefix string
	//参数占位符
	PlaceHolder string
	//SQLNameFunc SQL名称转换函数
	SQLNameFunc func(any) string
	//NameFunc 字段名称转换函数
	NameFunc func(string) string
	//DateFormat 日期格式化
	DateFormat string
	//Keywords 关键字映射
	Keywords map[string]string

	// Types column type templates per type code
	Types *TypeNames
	// SQLTypeOverrides type a value of the key type is bound as
	SQLTypeOverrides map[TypeCode]TypeCode
	Functions        *FunctionRegistry
	Limit            LimitHandler
	Locks            *LockSupport
	// Sequences nil when the database has no sequences
	Sequences    *SequenceSupport
	Identity     *IdentityColumnSupport
	IDTable      *IDTableSupport
	Capabilities Capabilities
	Strings      Strings
	Properties   Properties
	Errors       sqlerr.Converter
	Constraints  sqlerr.ConstraintNameExtractor
}

func (d *Dialect) Keyword(name string) string {
	if d.Keywords == nil {
		return name
	}
	if k, ok := d.Keywords[name]; ok {
		return k
	}
	return name
}
func (d *Dialect) KeywordWith(prefix string, kw string, suffix string) string {

	return prefix + d.Keyword(kw) + suffix
}
func (d *Dialect) KeywordWithSpace(kw string) string {
	return d.KeywordWith(" ", kw, " ")
}

// Driver database/sql driver name used to open connections.
func (d *Dialect) Driver() string {
	if d.DriverName != "" {
		return d.DriverName
	}
	return d.Name
}

// ColumnType column type for code with the given length, precision and scale.
func (d *Dialect) ColumnType(code TypeCode, length int64, precision, scale int) (string, error) {
	if d.Types == nil {
		return "", ErrNoColumnType
	}
	return d.Types.Get(code, length, precision, scale)
}

// DefaultColumnType column type for code with default length/precision/scale.
func (d *Dialect) DefaultColumnType(code TypeCode) (string, error) {
	return d.ColumnType(code, DefaultLength, DefaultPrecision, DefaultScale)
}

// SQLType type code a value of code is bound as.
func (d *Dialect) SQLType(code TypeCode) TypeCode {
	if o, ok := d.SQLTypeOverrides[code]; ok {
		return o
	}
	return code
}

func (d *Dialect) RenderFunction(name string, args ...string) (string, error) {
	return d.Functions.Render(name, args...)
}

func (d *Dialect) limitHandler() LimitHandler {
	if d.Limit == nil {
		return NoLimitHandler{}
	}
	return d.Limit
}

// LimitSQL applies the row selection to sql and returns the limit arguments
// to bind in the order the handler expects.
func (d *Dialect) LimitSQL(sql string, sel *RowSelection) (string, []any) {
	h := d.limitHandler()
	return h.ProcessSQL(sql, sel), h.LimitArgs(sel)
}

// BindLimitArgs combines query args with limit args.
func (d *Dialect) BindLimitArgs(args []any, limitArgs []any) []any {
	if len(limitArgs) == 0 {
		return args
	}
	all := make([]any, 0, len(args)+len(limitArgs))
	if d.limitHandler().BindLimitParametersFirst() {
		all = append(all, limitArgs...)
		return append(all, args...)
	}
	all = append(all, args...)
	return append(all, limitArgs...)
}

func (d *Dialect) ForUpdate(mode LockMode, timeout int, aliases string) string {
	return d.Locks.ForUpdateFor(mode, timeout, aliases)
}

func (d *Dialect) WriteLockString(timeout int) string {
	return d.Locks.WriteLockString(timeout)
}

func (d *Dialect) ReadLockString(timeout int) string {
	return d.Locks.ReadLockString(timeout)
}

// QueryHint applies optimizer hints. Dialects without hint support return sql
// unchanged.
func (d *Dialect) QueryHint(sql, hints string) (string, error) {
	if !d.Capabilities.QueryHints {
		return sql, nil
	}
	return OracleStyleHint(sql, hints)
}

// UseFollowOnLocking whether row locks for sql must be taken by a follow-up
// statement instead of a "for update" clause.
func (d *Dialect) UseFollowOnLocking(sql string, sel *RowSelection) bool {
	if !d.Capabilities.FollowOnLocking {
		return false
	}
	return RownumFollowOnLocking(sql, sel)
}

func (d *Dialect) NotExpression(expr string) string {
	return "not (" + expr + ")"
}

// SelectClauseNullString literal used to select a typed null.
func (d *Dialect) SelectClauseNullString(TypeCode) string {
	if d.Strings.NullSelect == "" {
		return "null"
	}
	return d.Strings.NullSelect
}

// ConstraintName name of the constraint err reports as violated, "" if unknown.
func (d *Dialect) ConstraintName(err error) string {
	if d.Constraints == nil || err == nil {
		return ""
	}
	return d.Constraints.ExtractConstraintName(err)
}

// ConvertError translates a driver error raised while running sql.
func (d *Dialect) ConvertError(err error, message, sql string) error {
	return sqlerr.Translate(d.Errors, err, message, sql)
}
