/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/cookieY/sqlx"
	"github.com/sirupsen/logrus"
)

// DB 数据库连接，包含方言与SQL模板
type DB struct {
	*sqlx.DB
	m        *DBManager
	driver   *dialect.Dialect
	props    dialect.Properties
	template *template.Template
}

// NewDB 包装一个已打开的 sqlx 连接
func NewDB(db *sqlx.DB, driver *dialect.Dialect) *DB {
	if driver.NameFunc != nil {
		db.MapperFunc(driver.NameFunc)
	}
	return &DB{
		DB:       db,
		driver:   driver,
		props:    driver.Properties.Clone(),
		template: template.New("sql").Funcs(MakeFuncMap(driver)),
	}
}

func (d *DB) SetManager(m *DBManager) {
	d.m = m
}

func (d *DB) Manager() *DBManager {
	return d.m
}

// Dialect 当前连接的方言
func (d *DB) Dialect() *dialect.Dialect {
	return d.driver
}

// Properties dialect defaults merged with overrides of this connection
func (d *DB) Properties() dialect.Properties {
	return d.props
}

// SetProperties overrides dialect properties for this connection only.
func (d *DB) SetProperties(p dialect.Properties) {
	d.props = d.driver.Properties.Clone().Merge(p)
}

// ParseTemplateFS 从文件系统加载SQL模板，模板名称为文件路径（如 users/count.sql）
func (d *DB) ParseTemplateFS(f fs.FS, patterns ...string) error {
	for _, pattern := range patterns {
		files, err := fs.Glob(f, pattern)
		if err != nil {
			return err
		}
		for _, file := range files {
			content, err := fs.ReadFile(f, file)
			if err != nil {
				return err
			}
			if err = d.ParseTemplate(file, string(content)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseTemplate 添加一个SQL模板
func (d *DB) ParseTemplate(name, text string) error {
	if _, err := d.template.New(name).Parse(text); err != nil {
		return fmt.Errorf("parse sql template %s: %w", name, err)
	}
	return nil
}

func (d *DB) render(tpl string, data any) (string, error) {
	if d.template.Lookup(tpl) == nil {
		return "", fmt.Errorf("sql template %s not found", tpl)
	}
	sb := strings.Builder{}
	if err := d.template.ExecuteTemplate(&sb, tpl, data); err != nil {
		return "", fmt.Errorf("execute sql template %s: %w", tpl, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// renderEx renders tpl and binds args. A single map or struct argument is
// bound by name, anything else positionally.
func (d *DB) renderEx(ext sqlx.ExtContext, tpl string, args []any) (string, []any, error) {
	query, err := d.render(tpl, templateData(args))
	if err != nil {
		return "", nil, err
	}
	if len(args) == 1 && isNamedArg(args[0]) {
		return ext.BindNamed(query, args[0])
	}
	return ext.Rebind(query), args, nil
}

func (d *DB) Select(dest any, query string, args ...any) error {
	return d.SelectContext(context.Background(), dest, query, args...)
}

// SelectContext 查询多行，错误经方言转换
func (d *DB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if d == nil {
		return ErrNilDB
	}
	return selectContext(ctx, d.DB, d.driver, dest, query, args...)
}

func (d *DB) Get(dest any, query string, args ...any) error {
	return d.GetContext(context.Background(), dest, query, args...)
}

func (d *DB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if d == nil {
		return ErrNilDB
	}
	return getContext(ctx, d.DB, d.driver, dest, query, args...)
}

func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.ExecContext(context.Background(), query, args...)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if d == nil {
		return nil, ErrNilDB
	}
	return execContext(ctx, d.DB, d.driver, query, args...)
}

// SelectEx 使用SQL模板查询
func (d *DB) SelectEx(dest any, tpl string, args ...any) error {
	return d.SelectExContext(context.Background(), dest, tpl, args...)
}

func (d *DB) SelectExContext(ctx context.Context, dest any, tpl string, args ...any) error {
	if d == nil {
		return ErrNilDB
	}
	query, bound, err := d.renderEx(d.DB, tpl, args)
	if err != nil {
		return err
	}
	return selectContext(ctx, d.DB, d.driver, dest, query, bound...)
}

// GetEx 使用SQL模板查询单行
func (d *DB) GetEx(dest any, tpl string, args ...any) error {
	return d.GetExContext(context.Background(), dest, tpl, args...)
}

func (d *DB) GetExContext(ctx context.Context, dest any, tpl string, args ...any) error {
	if d == nil {
		return ErrNilDB
	}
	query, bound, err := d.renderEx(d.DB, tpl, args)
	if err != nil {
		return err
	}
	return getContext(ctx, d.DB, d.driver, dest, query, bound...)
}

// ExecEx 使用SQL模板执行
func (d *DB) ExecEx(tpl string, args ...any) (sql.Result, error) {
	return d.ExecExContext(context.Background(), tpl, args...)
}

func (d *DB) ExecExContext(ctx context.Context, tpl string, args ...any) (sql.Result, error) {
	if d == nil {
		return nil, ErrNilDB
	}
	query, bound, err := d.renderEx(d.DB, tpl, args)
	if err != nil {
		return nil, err
	}
	return execContext(ctx, d.DB, d.driver, query, bound...)
}

// NamedExecEx 使用SQL模板执行，参数按名称绑定
func (d *DB) NamedExecEx(tpl string, arg any) (sql.Result, error) {
	return d.ExecExContext(context.Background(), tpl, arg)
}

// Paginate selects the rows of sel. The dialect rewrites query and the limit
// arguments are bound around args in the order it expects.
func (d *DB) Paginate(ctx context.Context, dest any, sel *dialect.RowSelection, query string, args ...any) error {
	if d == nil {
		return ErrNilDB
	}
	return paginate(ctx, d.DB, d.driver, dest, sel, query, args...)
}

// Count 统计查询结果行数
func (d *DB) Count(ctx context.Context, query string, args ...any) (int64, error) {
	if d == nil {
		return 0, ErrNilDB
	}
	return count(ctx, d.DB, d.driver, query, args...)
}

// Hint adds optimizer hints to query when the dialect supports them.
func (d *DB) Hint(query, hints string) (string, error) {
	if d == nil {
		return "", ErrNilDB
	}
	return d.driver.QueryHint(query, hints)
}

// LockForUpdate appends the row lock clause for mode to query. It fails with
// ErrFollowOnLocking when the dialect cannot lock the rows of query in the
// same statement.
func (d *DB) LockForUpdate(query string, sel *dialect.RowSelection, mode dialect.LockMode, timeout int, aliases string) (string, error) {
	if d == nil {
		return "", ErrNilDB
	}
	return lockForUpdate(d.driver, query, sel, mode, timeout, aliases)
}

func (d *DB) sequences() (*dialect.SequenceSupport, error) {
	if d == nil {
		return nil, ErrNilDB
	}
	if d.driver.Sequences == nil {
		return nil, fmt.Errorf("%w: %s", dialect.ErrNoSequences, d.driver.Name)
	}
	return d.driver.Sequences, nil
}

// NextSequenceValue 获取序列的下一个值
func (d *DB) NextSequenceValue(ctx context.Context, name string) (int64, error) {
	seq, err := d.sequences()
	if err != nil {
		return 0, err
	}
	var v int64
	err = getContext(ctx, d.DB, d.driver, &v, seq.NextValString(name))
	return v, err
}

// CreateSequence 创建序列
func (d *DB) CreateSequence(ctx context.Context, name string, initial, increment int) error {
	seq, err := d.sequences()
	if err != nil {
		return err
	}
	_, err = execContext(ctx, d.DB, d.driver, seq.CreateSequenceStringWith(name, initial, increment))
	return err
}

// DropSequence 删除序列
func (d *DB) DropSequence(ctx context.Context, name string) error {
	seq, err := d.sequences()
	if err != nil {
		return err
	}
	_, err = execContext(ctx, d.DB, d.driver, seq.DropSequenceString(name))
	return err
}

// Sequences reads the sequences visible to the current user.
func (d *DB) Sequences(ctx context.Context) ([]dialect.SequenceInformation, error) {
	seq, err := d.sequences()
	if err != nil {
		return nil, err
	}
	trace(d.driver, seq.Query, nil)
	rows, err := d.QueryxContext(ctx, seq.Query)
	if err != nil {
		return nil, d.driver.ConvertError(err, "", seq.Query)
	}
	defer rows.Close()
	var infos []dialect.SequenceInformation
	for rows.Next() {
		row := map[string]any{}
		if err = rows.MapScan(row); err != nil {
			return nil, d.driver.ConvertError(err, "", seq.Query)
		}
		info, err := seq.ScanSequence(row)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, d.driver.ConvertError(err, "", seq.Query)
	}
	return infos, nil
}

// CurrentTimestamp 数据库当前时间
func (d *DB) CurrentTimestamp(ctx context.Context) (time.Time, error) {
	var ts time.Time
	if d == nil {
		return ts, ErrNilDB
	}
	if !d.driver.Capabilities.CurrentTimestampSelection {
		return ts, fmt.Errorf("%s cannot select the current timestamp", d.driver.Name)
	}
	err := getContext(ctx, d.DB, d.driver, &ts, d.driver.Strings.CurrentTimestampSelect)
	return ts, err
}

// CurrentSchema 当前用户的默认schema
func (d *DB) CurrentSchema(ctx context.Context) (string, error) {
	return d.selectString(ctx, func(s dialect.Strings) string { return s.CurrentSchema })
}

// SelectGUID 由数据库生成一个GUID
func (d *DB) SelectGUID(ctx context.Context) (string, error) {
	return d.selectString(ctx, func(s dialect.Strings) string { return s.SelectGUID })
}

func (d *DB) selectString(ctx context.Context, fn func(dialect.Strings) string) (string, error) {
	if d == nil {
		return "", ErrNilDB
	}
	query := fn(d.driver.Strings)
	if query == "" {
		return "", fmt.Errorf("%s: statement not supported", d.driver.Name)
	}
	var s string
	err := getContext(ctx, d.DB, d.driver, &s, query)
	return s, err
}

// Batch 在事务中执行 fn，fn 返回错误或 panic 时回滚
func (d *DB) Batch(ctx context.Context, opts *sql.TxOptions, fn func(tx *Tx) error) (err error) {
	if d == nil {
		return ErrNilDB
	}
	tx, err := d.BeginTxx(ctx, opts)
	if err != nil {
		return d.driver.ConvertError(err, "begin transaction", "")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err = fn(&Tx{Tx: tx, db: d}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Warn("rollback transaction")
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return d.driver.ConvertError(err, "commit transaction", "")
	}
	return nil
}

// BatchExec runs query once per row. Rows are committed in chunks of the
// jdbc.batch_size property, each chunk in its own transaction. It returns
// the rows affected by the committed chunks.
func (d *DB) BatchExec(ctx context.Context, query string, rows []any) (int64, error) {
	if d == nil {
		return 0, ErrNilDB
	}
	size := d.props.Int(dialect.PropBatchSize, 1)
	if size < 1 {
		size = 1
	}
	var total int64
	for start := 0; start < len(rows); start += size {
		chunk := rows[start:min(start+size, len(rows))]
		var affected int64
		err := d.Batch(ctx, nil, func(tx *Tx) error {
			for _, row := range chunk {
				q, args, err := bindRow(tx.Tx, query, row)
				if err != nil {
					return err
				}
				r, err := execContext(ctx, tx.Tx, d.driver, q, args...)
				if err != nil {
					return err
				}
				if n, err := r.RowsAffected(); err == nil {
					affected += n
				}
			}
			return nil
		})
		if err != nil {
			return total, err
		}
		logrus.WithFields(logrus.Fields{"rows": len(chunk), "affected": affected}).Debug("batch committed")
		total += affected
	}
	return total, nil
}

// Insert 插入实体，返回数据库生成的主键（无自增列时为0）
func (d *DB) Insert(ctx context.Context, table string, entity any) (int64, error) {
	if d == nil {
		return 0, ErrNilDB
	}
	return insert(ctx, d.DB, d.driver, d.props, table, entity)
}

// CreateIDTable creates the id table of base, columns are column definitions.
func (d *DB) CreateIDTable(ctx context.Context, base string, columns []string) error {
	ids, err := d.idTable()
	if err != nil {
		return err
	}
	_, err = execContext(ctx, d.DB, d.driver, ids.CreateSQL(base, columns))
	return err
}

// CleanupIDTable empties or drops the id table of base.
func (d *DB) CleanupIDTable(ctx context.Context, base string) error {
	ids, err := d.idTable()
	if err != nil {
		return err
	}
	_, err = execContext(ctx, d.DB, d.driver, ids.CleanupSQL(base))
	return err
}

func (d *DB) idTable() (*dialect.IDTableSupport, error) {
	if d == nil {
		return nil, ErrNilDB
	}
	if d.driver.IDTable == nil {
		return nil, fmt.Errorf("%w: %s", dialect.ErrNoIDTable, d.driver.Name)
	}
	return d.driver.IDTable, nil
}
