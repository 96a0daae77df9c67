/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package sqlmx

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/TiberoClient/sqlmx-tibero/dialect"
	"github.com/TiberoClient/sqlmx-tibero/utils"
	"github.com/cookieY/sqlx"
	"github.com/sirupsen/logrus"
)

var (
	DefaultName = "Default"
	//Manager default connection manager
	Manager = NewDBManager(DefaultName)
	//Get a db from
	Get = Manager.Get
	//MustGet a db,if db not exists,raise a panic
	MustGet = Manager.MustGet
	//Set a db
	Set = Manager.Set
	//SetWithConnFunc set a db with constructors func
	SetWithConnFunc = Manager.SetWithConnFunc
	//OpenWithConnFunc initialize a db
	OpenWithConnFunc = Manager.OpenWithConnFunc

	//Open a db
	Open = Manager.Open
	//MustOpen a db,if db not exists,raise a panic
	MustOpen = Manager.MustOpen

	//OpenDefault open a db with default name
	OpenDefault = Manager.OpenDefault
	//OpenWith open a db with driver and datasource
	OpenWith = Manager.OpenWith
	//SetTemplateFS set sql template from filesystem
	SetTemplateFS = Manager.SetTemplateFS

	//SetDialect set default dialect
	SetDialect = Manager.SetDefaultDialect
	//SetProperties override dialect properties of new connections
	SetProperties = Manager.SetProperties
	//ClearTemplateFS clear sql template from filesystem
	ClearTemplateFS = Manager.ClearTemplateFS

	//Shutdown manager and close all db
	Shutdown = Manager.Shutdown
)

type ConnFunc func() (*DB, error)

// TplFS SQL模板文件系统及匹配模式
type TplFS struct {
	FS       fs.FS
	Patterns []string
}

// DBManager 按名称管理数据库连接，支持延迟创建
type DBManager struct {
	name         string
	driver       *dialect.Dialect
	props        dialect.Properties
	templateFS   []*TplFS
	dbs          map[string]*DB
	constructors map[string]ConnFunc
	lock         *sync.RWMutex
}

func NewManagerWithDriver(name string, driver *dialect.Dialect) *DBManager {
	return &DBManager{
		name:         name,
		driver:       driver,
		dbs:          map[string]*DB{},
		constructors: map[string]ConnFunc{},
		lock:         &sync.RWMutex{},
	}
}

func NewDBManager(name string) *DBManager {
	return NewManagerWithDriver(name, DefaultDialect)
}

// SetTemplateFS 新连接从 f 中加载匹配 patterns 的SQL模板
func (m *DBManager) SetTemplateFS(f fs.FS, patterns ...string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.templateFS = append(m.templateFS, &TplFS{FS: f, Patterns: patterns})
}

func (m *DBManager) ClearTemplateFS() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.templateFS = nil
}

// Get 获取一个数据库连接，已注册构造函数的连接在首次获取时创建
func (m *DBManager) Get(name string) (*DB, error) {
	m.lock.RLock()
	db, ok := m.dbs[name]
	m.lock.RUnlock()
	if ok {
		return db, nil
	}

	m.lock.Lock()
	if db, ok = m.dbs[name]; ok {
		m.lock.Unlock()
		return db, nil
	}
	connFunc, ok := m.constructors[name]
	//无论是否成功都移除构造函数，避免反复初始化
	delete(m.constructors, name)
	m.lock.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: database %s not found in %s", ErrDBNotFound, name, m.name)
	}

	db, err := connFunc()
	if err != nil {
		return nil, fmt.Errorf("initialize database %s: %w", name, err)
	}
	m.Set(name, db)
	logrus.WithField("name", name).Debug("database initialized")
	return db, nil
}

// MustGet 获取一个数据库连接，如果不存在则panic
func (m *DBManager) MustGet(name string) *DB {
	return utils.Must(m.Get(name))
}

// OpenWithConnFunc 创建新的数据库连接并放入管理器中
func (m *DBManager) OpenWithConnFunc(name string, fn ConnFunc) (*DB, error) {
	db, err := fn()
	if err != nil {
		return nil, err
	}
	m.Set(name, db)
	return db, nil
}

// Open 打开一个数据库连接，dialectName 为方言名称（tibero/mysql/mssql/postgres）。
// 同名连接已存在时直接返回
func (m *DBManager) Open(name, dialectName, dsn string) (*DB, error) {
	if m.Exists(name) {
		return m.Get(name)
	}
	d, err := LookupDialect(dialectName)
	if err != nil {
		return nil, err
	}
	return m.OpenWithConnFunc(name, func() (*DB, error) {
		return m.OpenWith(d, dsn)
	})
}

// MustOpen 打开一个数据库连接，如果失败则panic
func (m *DBManager) MustOpen(name, dialectName, dsn string) *DB {
	return utils.Must(m.Open(name, dialectName, dsn))
}

func (m *DBManager) OpenDefault(dialectName, dsn string) (*DB, error) {
	return m.Open(DefaultName, dialectName, dsn)
}

func (m *DBManager) Exists(name string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.dbs[name]
	return ok
}

// Set a database
func (m *DBManager) Set(name string, db *DB) {
	m.lock.Lock()
	defer m.lock.Unlock()
	db.SetManager(m)
	m.dbs[name] = db
}

// SetWithConnFunc set a database constructor(Lazy create DB)
func (m *DBManager) SetWithConnFunc(name string, connFunc ConnFunc) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.constructors[name] = connFunc
}

// Shutdown 关闭所有连接，返回所有关闭错误
func (m *DBManager) Shutdown() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	var errs []error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			logrus.WithError(err).WithField("name", name).Warn("close database")
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	m.dbs = map[string]*DB{}
	return errors.Join(errs...)
}

// SetDefaultDialect set default dialect
func (m *DBManager) SetDefaultDialect(driver *dialect.Dialect) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.driver = driver
}

// SetProperties 覆盖新连接的方言属性
func (m *DBManager) SetProperties(p dialect.Properties) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.props = p.Clone()
}

// OpenWith 使用方言打开连接，curDialect 为空时使用默认方言
func (m *DBManager) OpenWith(curDialect *dialect.Dialect, datasource string) (*DB, error) {
	if curDialect == nil {
		m.lock.RLock()
		curDialect = m.driver
		m.lock.RUnlock()
	}
	if curDialect == nil {
		return nil, ErrNilDriver
	}
	db, err := sqlx.Open(curDialect.Driver(), datasource)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"dialect": curDialect.Name,
		"driver":  curDialect.Driver(),
	}).Debug("open database")
	return m.Wrap(db, curDialect)
}

// Wrap 包装已打开的 sqlx 连接，应用属性覆盖并加载模板。模板加载失败时关闭 db
func (m *DBManager) Wrap(db *sqlx.DB, curDialect *dialect.Dialect) (*DB, error) {
	m.lock.RLock()
	props, templates := m.props, m.templateFS
	m.lock.RUnlock()

	wrapped := NewDB(db, curDialect)
	wrapped.SetManager(m)
	if props != nil {
		wrapped.SetProperties(props)
	}
	for _, t := range templates {
		if err := wrapped.ParseTemplateFS(t.FS, t.Patterns...); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("close database")
			}
			return nil, err
		}
	}
	return wrapped, nil
}

func (m *DBManager) String() string {
	return fmt.Sprintf("db[%s]", m.name)
}
