/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"strings"
	"unicode"

	"github.com/TiberoClient/sqlmx-tibero/utils"
)

// RowSelection the sub-range of rows a query should return. FirstRow is a
// zero based offset.
type RowSelection struct {
	FirstRow *int
	MaxRows  *int
}

// Selection builds a RowSelection, non-positive values are left unset.
func Selection(first, max int) *RowSelection {
	s := &RowSelection{}
	if first > 0 {
		s.FirstRow = &first
	}
	if max > 0 {
		s.MaxRows = &max
	}
	return s
}

// PageSelection selection for a one based page number.
func PageSelection(page, size int) *RowSelection {
	if page < 1 {
		page = 1
	}
	return Selection((page-1)*size, size)
}

func (s *RowSelection) HasFirstRow() bool {
	return s != nil && s.FirstRow != nil && *s.FirstRow > 0
}

func (s *RowSelection) HasMaxRows() bool {
	return s != nil && s.MaxRows != nil && *s.MaxRows > 0
}

// DefinesLimits reports whether the selection restricts the result at all.
func (s *RowSelection) DefinesLimits() bool {
	return s.HasFirstRow() || s.HasMaxRows()
}

func (s *RowSelection) First() int {
	if s.HasFirstRow() {
		return *s.FirstRow
	}
	return 0
}

func (s *RowSelection) Max() int {
	if s.HasMaxRows() {
		return *s.MaxRows
	}
	return 0
}

// LimitHandler rewrites a query so that it only returns the selected rows.
// Placeholders added by ProcessSQL are bound with LimitArgs, before the query
// arguments when BindLimitParametersFirst is set, after them otherwise.
type LimitHandler interface {
	SupportsLimit() bool
	ProcessSQL(sql string, sel *RowSelection) string
	LimitArgs(sel *RowSelection) []any
	BindLimitParametersFirst() bool
	BindLimitParametersInReverseOrder() bool
	UseMaxForLimit() bool
}

func useLimit(h LimitHandler, sel *RowSelection) bool {
	return h.SupportsLimit() && sel.HasMaxRows()
}

func limitArgs(h LimitHandler, sel *RowSelection) []any {
	if !useLimit(h, sel) {
		return nil
	}
	first, max := sel.First(), sel.Max()
	if h.UseMaxForLimit() {
		max += first
	}
	if !sel.HasFirstRow() {
		return []any{max}
	}
	if h.BindLimitParametersInReverseOrder() {
		return []any{max, first}
	}
	return []any{first, max}
}

// NoLimitHandler leaves queries untouched.
type NoLimitHandler struct{}

func (NoLimitHandler) SupportsLimit() bool { return false }
func (NoLimitHandler) ProcessSQL(sql string, _ *RowSelection) string { return sql }
func (NoLimitHandler) LimitArgs(*RowSelection) []any { return nil }
func (NoLimitHandler) BindLimitParametersFirst() bool { return false }
func (NoLimitHandler) BindLimitParametersInReverseOrder() bool { return false }
func (NoLimitHandler) UseMaxForLimit() bool { return false }

// RownumLimitHandler wraps the query and filters on rownum. A trailing
// "for update" clause is moved outside the wrapper.
type RownumLimitHandler struct{}

func (RownumLimitHandler) SupportsLimit() bool { return true }
func (RownumLimitHandler) BindLimitParametersFirst() bool { return false }
func (RownumLimitHandler) BindLimitParametersInReverseOrder() bool { return true }
func (RownumLimitHandler) UseMaxForLimit() bool { return true }

func (h RownumLimitHandler) ProcessSQL(sql string, sel *RowSelection) string {
	if !useLimit(h, sel) {
		return sql
	}
	return RownumLimitString(sql, sel.HasFirstRow())
}

func (h RownumLimitHandler) LimitArgs(sel *RowSelection) []any {
	return limitArgs(h, sel)
}

// RownumLimitString renders the rownum paging wrapper around sql.
func RownumLimitString(sql string, hasOffset bool) string {
	sql = strings.TrimSpace(sql)
	forUpdate := ""
	if idx := utils.LastIndexFold(sql, "for update"); idx > -1 {
		forUpdate = sql[idx:]
		sql = strings.TrimRightFunc(sql[:idx], unicode.IsSpace)
	}
	sb := strings.Builder{}
	sb.Grow(len(sql) + 100)
	if hasOffset {
		sb.WriteString("select * from ( select row_.*, rownum rownum_ from ( ")
	} else {
		sb.WriteString("select * from ( ")
	}
	sb.WriteString(sql)
	if hasOffset {
		sb.WriteString(" ) row_ where rownum <= ?) where rownum_ > ?")
	} else {
		sb.WriteString(" ) where rownum <= ?")
	}
	if forUpdate != "" {
		sb.WriteByte(' ')
		sb.WriteString(forUpdate)
	}
	return sb.String()
}

// LimitOffsetHandler appends a limit clause, e.g. " limit ? offset ?".
type LimitOffsetHandler struct {
	WithOffset    string
	WithoutOffset string
	Reverse       bool
}

func (LimitOffsetHandler) SupportsLimit() bool { return true }
func (LimitOffsetHandler) BindLimitParametersFirst() bool { return false }
func (LimitOffsetHandler) UseMaxForLimit() bool { return false }
func (h LimitOffsetHandler) BindLimitParametersInReverseOrder() bool {
	return h.Reverse
}

func (h LimitOffsetHandler) ProcessSQL(sql string, sel *RowSelection) string {
	if !useLimit(h, sel) {
		return sql
	}
	sql = strings.TrimSpace(sql)
	if sel.HasFirstRow() {
		return sql + h.WithOffset
	}
	return sql + h.WithoutOffset
}

func (h LimitOffsetHandler) LimitArgs(sel *RowSelection) []any {
	return limitArgs(h, sel)
}

// OffsetFetchHandler SQL:2008 offset/fetch, which requires an order by.
type OffsetFetchHandler struct{}

func (OffsetFetchHandler) SupportsLimit() bool { return true }
func (OffsetFetchHandler) BindLimitParametersFirst() bool { return false }
func (OffsetFetchHandler) BindLimitParametersInReverseOrder() bool { return false }
func (OffsetFetchHandler) UseMaxForLimit() bool { return false }

func (h OffsetFetchHandler) ProcessSQL(sql string, sel *RowSelection) string {
	if !useLimit(h, sel) {
		return sql
	}
	sql = strings.TrimSpace(sql)
	if !orderByRe.MatchString(strings.ToLower(sql)) {
		sql += " order by (select 0)"
	}
	if sel.HasFirstRow() {
		return sql + " offset ? rows fetch next ? rows only"
	}
	return sql + " offset 0 rows fetch next ? rows only"
}

func (h OffsetFetchHandler) LimitArgs(sel *RowSelection) []any {
	return limitArgs(h, sel)
}

// CountSQL wraps query to count its rows.
func CountSQL(query string) string {
	return "select count(*) from ( " + strings.TrimSpace(query) + " ) count_"
}
