package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pingcap/errors"
	_ "modernc.org/sqlite"
)

const (
	EngineSQLite = "sqlite"
	EngineMySQL  = "mysql"
)

type Option struct {
	Engine   string `toml:"engine"`
	Path     string `toml:"path"`
	Addr     string `toml:"addr"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Label    string `toml:"label"`
}

func (opt Option) normalize() (Option, error) {
	if opt.Engine == "" {
		opt.Engine = EngineSQLite
	}
	switch opt.Engine {
	case EngineSQLite:
		if opt.Path == "" {
			return opt, errors.Errorf("no path for sqlite instance %v", opt.Label)
		}
	case EngineMySQL:
		if opt.Addr == "" || opt.User == "" {
			return opt, errors.Errorf("incomplete mysql options for instance %v", opt.Label)
		}
	default:
		return opt, errors.Errorf("unknown engine=%v", opt.Engine)
	}
	if opt.Label == "" {
		if opt.Engine == EngineSQLite {
			opt.Label = opt.Path
		} else {
			opt.Label = fmt.Sprintf("%v:%v", opt.Addr, opt.Port)
		}
	}
	return opt, nil
}

type Instance interface {
	Exec(sql string) error
	Query(query string) (*sql.Rows, error)
	DB() *sql.DB
	Engine() string
	Opt() Option
	Close() error
}

type instance struct {
	db  *sql.DB
	opt Option
}

func (ins *instance) Exec(sql string) error {
	begin := time.Now()
	_, err := ins.db.Exec(sql)
	if time.Since(begin) > time.Millisecond*50 {
		fmt.Printf("[SLOW-QUERY]access %v with SQL %v cost %v\n", ins.opt.Label, sql, time.Since(begin))
	}
	return errors.Trace(err)
}

func (ins *instance) Query(query string) (*sql.Rows, error) {
	begin := time.Now()
	rows, err := ins.db.Query(query)
	if time.Since(begin) > time.Millisecond*10 {
		fmt.Printf("[SLOW-QUERY]access %v with SQL %v cost %v\n", ins.opt.Label, query, time.Since(begin))
	}
	return rows, errors.Trace(err)
}

func (ins *instance) DB() *sql.DB {
	return ins.db
}

func (ins *instance) Engine() string {
	return ins.opt.Engine
}

func (ins *instance) Opt() Option {
	return ins.opt
}

func (ins *instance) Close() error {
	return ins.db.Close()
}

func ConnectToInstances(opts []Option) (xs []Instance, err error) {
	xs = make([]Instance, 0, len(opts))
	defer func() {
		if err != nil {
			for _, x := range xs {
				x.Close()
			}
		}
	}()
	for _, opt := range opts {
		var ins Instance
		ins, err = ConnectTo(opt)
		if err != nil {
			return
		}
		xs = append(xs, ins)
	}
	return
}

func ConnectTo(opt Option) (Instance, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var driver, dsn string
	switch opt.Engine {
	case EngineSQLite:
		driver, dsn = "sqlite", opt.Path
	case EngineMySQL:
		driver = "mysql"
		dbName := opt.DB
		if dbName == "" {
			dbName = "mysql"
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%v)/%v", opt.User, opt.Password, opt.Addr, opt.Port, dbName)
		if opt.Password == "" {
			dsn = fmt.Sprintf("%s@tcp(%s:%v)/%v", opt.User, opt.Addr, opt.Port, dbName)
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if opt.Engine == EngineSQLite && strings.Contains(opt.Path, ":memory:") {
		// every pooled connection opens a distinct in-memory database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Trace(err)
	}
	return &instance{db: db, opt: opt}, nil
}

// Quote quotes an identifier for the given engine.
func Quote(engine, ident string) string {
	if engine == EngineMySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// RandFunc returns the engine's random-number SQL function.
func RandFunc(engine string) string {
	if engine == EngineMySQL {
		return "RAND()"
	}
	return "random()"
}
