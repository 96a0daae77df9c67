/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"strings"
)

// lock timeouts with special meaning
const (
	WaitForever = -1
	NoWait      = 0
	SkipLocked  = -2
)

type LockMode int

const (
	LockNone LockMode = iota
	LockRead
	LockOptimistic
	LockOptimisticForceIncrement
	LockUpgrade
	LockUpgradeNoWait
	LockUpgradeSkipLocked
	LockPessimisticRead
	LockPessimisticWrite
	LockPessimisticForceIncrement
)

var lockModeNames = map[LockMode]string{
	LockNone:                      "none",
	LockRead:                      "read",
	LockOptimistic:                "optimistic",
	LockOptimisticForceIncrement:  "optimistic_force_increment",
	LockUpgrade:                   "upgrade",
	LockUpgradeNoWait:             "upgrade_nowait",
	LockUpgradeSkipLocked:         "upgrade_skiplocked",
	LockPessimisticRead:           "pessimistic_read",
	LockPessimisticWrite:          "pessimistic_write",
	LockPessimisticForceIncrement: "pessimistic_force_increment",
}

// Pessimistic modes lock rows in the database, the others at most check a
// version column.
func (m LockMode) Pessimistic() bool {
	return m >= LockUpgrade
}

func (m LockMode) String() string {
	return lockModeNames[m]
}

func ParseLockMode(s string) (LockMode, error) {
	for m, name := range lockModeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return LockNone, fmt.Errorf("unknown lock mode %q", s)
}

// LockSupport row lock clauses of a dialect. ReadLock empty means read locks
// use the write lock clause.
type LockSupport struct {
	ForUpdate  string
	NoWait     string
	SkipLocked string
	ReadLock   string
	// OfColumns "for update of" takes column names rather than table aliases
	OfColumns bool
}

func (l *LockSupport) ForUpdateString() string {
	if l == nil {
		return ""
	}
	return l.ForUpdate
}

// ForUpdateStringOf the plain clause does not name aliases.
func (l *LockSupport) ForUpdateStringOf(string) string {
	return l.ForUpdateString()
}

func (l *LockSupport) ForUpdateNowaitString() string {
	if l == nil || l.NoWait == "" {
		return l.ForUpdateString()
	}
	return l.ForUpdate + l.NoWait
}

func (l *LockSupport) ForUpdateNowaitStringOf(aliases string) string {
	if l == nil || l.NoWait == "" {
		return l.ForUpdateString()
	}
	return l.ForUpdate + " of " + aliases + l.NoWait
}

func (l *LockSupport) ForUpdateSkipLockedString() string {
	if l == nil || l.SkipLocked == "" {
		return l.ForUpdateString()
	}
	return l.ForUpdate + l.SkipLocked
}

func (l *LockSupport) ForUpdateSkipLockedStringOf(aliases string) string {
	if l == nil || l.SkipLocked == "" {
		return l.ForUpdateString()
	}
	return l.ForUpdate + " of " + aliases + l.SkipLocked
}

// WriteLockString clause for a pessimistic write lock with timeout in ms.
func (l *LockSupport) WriteLockString(timeout int) string {
	if timeout == SkipLocked {
		return l.ForUpdateSkipLockedString()
	}
	return l.ForUpdateString()
}

func (l *LockSupport) WriteLockStringOf(aliases string, timeout int) string {
	if timeout == SkipLocked {
		return l.ForUpdateSkipLockedStringOf(aliases)
	}
	return l.WriteLockString(timeout)
}

func (l *LockSupport) ReadLockString(timeout int) string {
	if l != nil && l.ReadLock != "" {
		return l.ReadLock
	}
	return l.WriteLockString(timeout)
}

func (l *LockSupport) ReadLockStringOf(aliases string, timeout int) string {
	if l != nil && l.ReadLock != "" {
		return l.ReadLock
	}
	return l.WriteLockStringOf(aliases, timeout)
}

// ForUpdateFor clause for the given lock mode. aliases may be empty.
func (l *LockSupport) ForUpdateFor(mode LockMode, timeout int, aliases string) string {
	if aliases == "" {
		switch mode {
		case LockUpgrade:
			return l.ForUpdateString()
		case LockPessimisticRead:
			return l.ReadLockString(timeout)
		case LockPessimisticWrite:
			return l.WriteLockString(timeout)
		case LockUpgradeNoWait, LockPessimisticForceIncrement:
			return l.ForUpdateNowaitString()
		case LockUpgradeSkipLocked:
			return l.ForUpdateSkipLockedString()
		}
		return ""
	}
	switch mode {
	case LockUpgrade:
		return l.ForUpdateStringOf(aliases)
	case LockPessimisticRead:
		return l.ReadLockStringOf(aliases, timeout)
	case LockPessimisticWrite:
		return l.WriteLockStringOf(aliases, timeout)
	case LockUpgradeNoWait, LockPessimisticForceIncrement:
		return l.ForUpdateNowaitStringOf(aliases)
	case LockUpgradeSkipLocked:
		return l.ForUpdateSkipLockedStringOf(aliases)
	}
	return ""
}
