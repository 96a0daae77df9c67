/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"strings"
	"unicode/utf8"
)

// IDTableSupport temporary tables holding ids for multi-table bulk updates
// and deletes.
type IDTableSupport struct {
	Prefix        string
	MaxNameLength int
	CreateCommand string
	Options       string
	DropCommand   string
	// CleanAfterUse delete rows after use instead of dropping the table
	CleanAfterUse bool
}

// TableName id table name for base, truncated to MaxNameLength bytes without
// splitting a multi-byte character.
func (s *IDTableSupport) TableName(base string) string {
	name := s.Prefix + base
	if s.MaxNameLength <= 0 || len(name) <= s.MaxNameLength {
		return name
	}
	n := s.MaxNameLength
	for n > 0 && !utf8.RuneStart(name[n]) {
		n--
	}
	return name[:n]
}

// CreateSQL DDL for the id table of base with the given column definitions.
func (s *IDTableSupport) CreateSQL(base string, columns []string) string {
	sb := strings.Builder{}
	sb.WriteString(s.CreateCommand)
	sb.WriteByte(' ')
	sb.WriteString(s.TableName(base))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteByte(')')
	if s.Options != "" {
		sb.WriteByte(' ')
		sb.WriteString(s.Options)
	}
	return sb.String()
}

// CleanupSQL statement run after the id table was used.
func (s *IDTableSupport) CleanupSQL(base string) string {
	if s.CleanAfterUse {
		return "delete from " + s.TableName(base)
	}
	return s.DropCommand + " " + s.TableName(base)
}
