// Package socialgraph implements a small social network core on top of a
// Neo4j graph database: users, posts, tags, friendship and follow
// relationships, and the traversal queries a social application needs
// (mutual friends, friend-of-friend suggestions, ranked posts).
//
// The package is a library with no presentation surface of its own. All
// operations are plain function calls on a Service, which talks to the
// backend through the Runner interface. The Neo4jExecutor is the production
// Runner; tests substitute a fake.
package socialgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner executes Cypher against the graph backend. Implementations must be
// safe for concurrent use; every call acquires its own session/transaction
// scope and shares no mutable state with other calls.
type Runner interface {
	// Run executes a single query with parameters and returns a
	// fully-buffered, normalized result. A single MERGE statement is atomic
	// by construction, so this is sufficient for all writes except post
	// creation.
	Run(ctx context.Context, query string, params map[string]any) (*Result, error)

	// ExecuteWrite runs work inside one managed write transaction. The
	// statements issued through the Tx commit atomically when work returns
	// nil and roll back entirely when it returns an error.
	ExecuteWrite(ctx context.Context, work func(tx Tx) error) error
}

// Tx is the transactional handle passed to ExecuteWrite work functions.
type Tx interface {
	Run(ctx context.Context, query string, params map[string]any) (*Result, error)
}

// Config holds connection settings for the Neo4j backend. How the values are
// sourced (environment, flags, files) is the caller's concern.
type Config struct {
	// URI is the bolt/neo4j connection URI, e.g. "neo4j://localhost:7687".
	URI string
	// Username and Password authenticate against the server.
	Username string
	Password string
	// Database selects the target database; empty means the server default.
	Database string
	// MaxConnectionPoolSize limits pooled connections; zero uses the driver
	// default.
	MaxConnectionPoolSize int
	// ConnectionTimeout bounds connection acquisition.
	ConnectionTimeout time.Duration
	// MaxTransactionRetryTime bounds the driver's managed-transaction
	// retries.
	MaxTransactionRetryTime time.Duration
}

// DefaultConfig returns a Config suitable for a local development instance.
func DefaultConfig() Config {
	return Config{
		URI:                     "neo4j://localhost:7687",
		Username:                "neo4j",
		Password:                "",
		Database:                "neo4j",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("config: URI cannot be empty")
	}
	if c.Username == "" {
		return fmt.Errorf("config: Username cannot be empty")
	}
	if c.ConnectionTimeout < 0 {
		return fmt.Errorf("config: ConnectionTimeout cannot be negative")
	}
	if c.MaxTransactionRetryTime < 0 {
		return fmt.Errorf("config: MaxTransactionRetryTime cannot be negative")
	}
	return nil
}

// Neo4jExecutor is the production Runner backed by the official Neo4j Go
// driver. It owns the driver instance and releases it in Close; sessions are
// opened per call and closed deterministically on every exit path.
type Neo4jExecutor struct {
	driver neo4j.DriverWithContext
	config Config
}

// NewNeo4jExecutor validates the configuration and creates the driver.
// Creating the driver performs no I/O; call Verify to check connectivity.
func NewNeo4jExecutor(cfg Config) (*Neo4jExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.ConnectionTimeout
			}
			if cfg.MaxTransactionRetryTime > 0 {
				c.MaxTransactionRetryTime = cfg.MaxTransactionRetryTime
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return &Neo4jExecutor{driver: driver, config: cfg}, nil
}

// Verify checks connectivity to the backend.
func (e *Neo4jExecutor) Verify(ctx context.Context) error {
	if err := e.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Close releases the driver and all pooled connections.
func (e *Neo4jExecutor) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

// Run executes a single query using ExecuteQuery, which manages session and
// transaction scope internally. Suitable for both reads and writes.
func (e *Neo4jExecutor) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	eager, err := neo4j.ExecuteQuery(
		ctx,
		e.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.config.Database),
	)
	if err != nil {
		return nil, classifyError(err)
	}
	return newResult(eager.Records), nil
}

// ExecuteWrite opens a session, runs work inside a managed write
// transaction, and closes the session before returning. An error from work
// rolls back every statement issued through the Tx.
func (e *Neo4jExecutor) ExecuteWrite(ctx context.Context, work func(tx Tx) error) error {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: e.config.Database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(managedTx{tx: tx})
	})
	return classifyError(err)
}

// managedTx adapts a driver transaction to the Tx interface, normalizing
// results the same way Run does.
type managedTx struct {
	tx neo4j.ManagedTransaction
}

func (m managedTx) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	res, err := m.tx.Run(ctx, query, params)
	if err != nil {
		return nil, classifyError(err)
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, classifyError(err)
	}
	return newResult(records), nil
}
