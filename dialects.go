/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
)

var (
	DefaultDialect = dialect.Tibero
	Tibero         = dialect.Tibero
	MySQL          = dialect.MySQL
	SQLServer      = dialect.SQLServer
	Postgres       = dialect.Postgres
	Dialects       = map[string]*dialect.Dialect{
		"tibero":   Tibero,
		"mysql":    MySQL,
		"mssql":    SQLServer,
		"postgres": Postgres,
	}
	dialectLock = sync.RWMutex{}
)

// RegisterDialect 注册方言，同名方言会被覆盖
func RegisterDialect(d *dialect.Dialect) {
	dialectLock.Lock()
	defer dialectLock.Unlock()
	Dialects[strings.ToLower(d.Name)] = d
}

// LookupDialect 根据名称查找方言
func LookupDialect(name string) (*dialect.Dialect, error) {
	dialectLock.RLock()
	defer dialectLock.RUnlock()
	if d, ok := Dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
}

// DialectNames sorted names of the registered dialects
func DialectNames() []string {
	dialectLock.RLock()
	defer dialectLock.RUnlock()
	names := make([]string, 0, len(Dialects))
	for k := range Dialects {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
