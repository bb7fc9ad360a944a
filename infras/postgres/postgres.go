package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"salon/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection holds the sqlx handles used by the catalog, staff and working-hours repositories.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// Close releases both handles.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func writeEndpoint(config config.Config) endpoint {
	return endpoint{
		name:     "write",
		username: config.DB.Postgres.Write.Username,
		password: config.DB.Postgres.Write.Password,
		host:     config.DB.Postgres.Write.Host,
		port:     config.DB.Postgres.Write.Port,
		dbName:   getDBName(config, config.DB.Postgres.Write.Name),
		sslMode:  config.DB.Postgres.Write.SSLMode,
	}
}

func readEndpoint(config config.Config) endpoint {
	return endpoint{
		name:     "read",
		username: config.DB.Postgres.Read.Username,
		password: config.DB.Postgres.Read.Password,
		host:     config.DB.Postgres.Read.Host,
		port:     config.DB.Postgres.Read.Port,
		dbName:   getDBName(config, config.DB.Postgres.Read.Name),
		sslMode:  config.DB.Postgres.Read.SSLMode,
	}
}

// DSN renders the postgres URL of an endpoint.
func (e endpoint) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.dbName,
		e.sslMode,
	)
}

// WriteDSN is the URL of the primary, used by migrations and the reservation pool.
func WriteDSN(config config.Config) string {
	return writeEndpoint(config).DSN()
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(writeEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(readEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", e.DSN())
		if err == nil {
			log.
				Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("port", e.port).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
