package hmsdb

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx"
)

type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// RuntimeParams are sent on connect, e.g. search_path or statement_timeout.
	RuntimeParams map[string]string `yaml:"params"`
}

func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("postgres host must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid postgres port %d", c.Port)
	}
	if c.Database == "" {
		return fmt.Errorf("postgres database must be set")
	}
	return nil
}

type rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// session is a single connection to the metastore database.
type session interface {
	Query(ctx context.Context, sql string, args ...interface{}) (rows, error)
	Close() error
}

type logger struct {
}

func (l *logger) Log(level pgx.LogLevel, msg string, data map[string]interface{}) {
	log.Printf("postgres %s %s %+v", level, msg, data)
}

type pgxSession struct {
	conn *pgx.Conn
}

func connConfig(config *Config) pgx.ConnConfig {
	return pgx.ConnConfig{
		Host:          config.Host,
		Port:          uint16(config.Port),
		User:          config.User,
		Database:      config.Database,
		Password:      config.Password,
		RuntimeParams: config.RuntimeParams,
		Logger:        &logger{},
		LogLevel:      pgx.LogLevelWarn,
	}
}

func connect(ctx context.Context, config *Config) (session, error) {
	conn, err := pgx.Connect(connConfig(config))
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("couldn't ping database: %w", err)
	}
	return &pgxSession{conn: conn}, nil
}

func (s *pgxSession) Query(ctx context.Context, sql string, args ...interface{}) (rows, error) {
	out, err := s.conn.QueryEx(ctx, sql, nil, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *pgxSession) Close() error {
	return s.conn.Close()
}

// queryRows runs the query and calls scan for every row.
func queryRows(ctx context.Context, s session, scan func(r rows) error, sql string, args ...interface{}) error {
	r, err := s.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("couldn't execute database query: %w", err)
	}
	defer r.Close()

	for r.Next() {
		if err := scan(r); err != nil {
			return fmt.Errorf("couldn't scan values: %w", err)
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("couldn't read rows: %w", err)
	}
	return nil
}

func queryStrings(ctx context.Context, s session, sql string, args ...interface{}) ([]string, error) {
	out := []string{}
	err := queryRows(ctx, s, func(r rows) error {
		var value string
		if err := r.Scan(&value); err != nil {
			return err
		}
		out = append(out, value)
		return nil
	}, sql, args...)
	return out, err
}

// queryParameters reads a key/value parameter table.
func queryParameters(ctx context.Context, s session, sql string, args ...interface{}) (map[string]string, error) {
	out := map[string]string{}
	err := queryRows(ctx, s, func(r rows) error {
		var key string
		var value *string
		if err := r.Scan(&key, &value); err != nil {
			return err
		}
		if value != nil {
			out[key] = *value
		} else {
			out[key] = ""
		}
		return nil
	}, sql, args...)
	return out, err
}
