package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ErrConnection marks a failure to reach the store: driver missing, network
// unreachable, credentials rejected.  Callers abort the operation; nothing
// is retried.
var ErrConnection = errors.New("connection failure")

// Settings is the fixed connection configuration resolved at startup.
type Settings struct {
	User    string
	Pass    string
	Host    string
	Port    string
	Name    string
	Timeout time.Duration
}

// DSN renders the settings for the MySQL driver.
func (s Settings) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Pass
	cfg.Net = "tcp"
	cfg.Addr = s.Host + ":" + s.Port
	cfg.DBName = s.Name
	// DATE -> time.Time in UTC
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// UPDATE reports matched rows, so an unchanged row is not mistaken for a missing one
	cfg.ClientFoundRows = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
		cfg.ReadTimeout = s.Timeout
		cfg.WriteTimeout = s.Timeout
	}
	return cfg.FormatDSN()
}

// Open connects to MySQL and verifies the connection.
func Open(s Settings) (*sql.DB, error) {
	return OpenDSN(s.DSN())
}

// OpenDSN is Open for a ready-made DSN.
func OpenDSN(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return db, nil
}

// Provider hands out a dedicated connection per unit of work.  The caller
// must Close the returned connection on every exit path.
type Provider interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
}

// Pool is the Provider backed by a database/sql pool.
type Pool struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPool wraps db.  A zero timeout leaves deadlines to the caller's context.
func NewPool(db *sql.DB, timeout time.Duration) *Pool {
	return &Pool{db: db, timeout: timeout}
}

// Acquire reserves one connection from the pool.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return conn, nil
}

// DB exposes the underlying pool for health checks.
func (p *Pool) DB() *sql.DB { return p.db }
