/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	distinctRe = regexp.MustCompile(`\bdistinct\b`)
	groupByRe  = regexp.MustCompile(`\bgroup\sby\b`)
	orderByRe  = regexp.MustCompile(`\border\sby\b`)
	unionRe    = regexp.MustCompile(`\bunion\b`)
	// optional leading block comment, then the statement keyword
	statementTypeRe = regexp.MustCompile(`(?is)^(?:/\*.*?\*/)?\s*(select|insert|update|delete)\s+`)
)

// StatementType returns select/insert/update/delete as written in sql.
func StatementType(sql string) (string, error) {
	m := statementTypeRe.FindStringSubmatch(sql)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrStatementType, sql)
	}
	return m[1], nil
}

// OracleStyleHint inserts "/*+ hints */" right after the statement keyword.
func OracleStyleHint(sql, hints string) (string, error) {
	if strings.TrimSpace(hints) == "" {
		return sql, nil
	}
	loc := statementTypeRe.FindStringSubmatchIndex(sql)
	if loc == nil {
		return "", fmt.Errorf("%w: %s", ErrStatementType, sql)
	}
	end := loc[3]
	sb := strings.Builder{}
	sb.Grow(len(sql) + len(hints) + 8)
	sb.WriteString(sql[:end])
	sb.WriteString(" /*+ ")
	sb.WriteString(hints)
	sb.WriteString(" */")
	sb.WriteString(sql[end:])
	return sb.String(), nil
}

// RownumFollowOnLocking reports whether locks must be acquired by a second
// statement: rownum paging, distinct, group by and union cannot be combined
// with "for update".
func RownumFollowOnLocking(sql string, sel *RowSelection) bool {
	lower := strings.ToLower(sql)
	if distinctRe.MatchString(lower) || groupByRe.MatchString(lower) || unionRe.MatchString(lower) {
		return true
	}
	if !sel.DefinesLimits() {
		return orderByRe.MatchString(lower) || (sel != nil && sel.FirstRow != nil)
	}
	return true
}
