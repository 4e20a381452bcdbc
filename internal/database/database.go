// Package database provides MySQL connection management for the launch
// record source.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/launchdash/internal/config"
)

// Manager owns the connection to the launch record database.
type Manager struct {
	DB     *sql.DB
	config *config.DatabaseConfig

	maxRetries int
	backoff    time.Duration
	open       func(dsn string) (*sql.DB, error)
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:     cfg,
		maxRetries: 3,
		backoff:    time.Second,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("mysql", dsn)
		},
	}
}

// Connect establishes the connection, retrying with exponential backoff.
func (m *Manager) Connect(ctx context.Context) error {
	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to launch database: %w", err)
	}
	m.DB = db
	return nil
}

// connectWithRetry opens and pings the database, doubling the wait between
// failed attempts.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var lastErr error
	wait := m.backoff

	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		db, err := m.connect()
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err

		if attempt == m.maxRetries {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.maxRetries, lastErr)
}

// connect creates a database handle with the configured pool limits.
func (m *Manager) connect() (*sql.DB, error) {
	db, err := m.open(BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.TLSConfig = tlsParam(cfg.TLS)
	return mc.FormatDSN()
}

// tlsParam maps the config tls mode to the driver's tls parameter.
func tlsParam(mode string) string {
	switch mode {
	case "disable":
		return "false"
	case "required":
		return "true"
	default:
		return "preferred"
	}
}

// Close closes the connection if one is open.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("launch database close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("launch database not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("launch database ping failed: %w", err)
	}
	return nil
}
