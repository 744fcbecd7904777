// Package mongodb implements the repository interfaces on a MongoDB database.
//
// Collections: users, categories, blogs. Documents use the bson tags on the model
// types; ids are native ObjectIDs and createdAt/updatedAt are BSON Dates.
//
// The connection is established lazily on first use and then reused. The dial
// runs on its own context bounded by dialTimeout, so a caller that gives up does
// not fail the connect for everyone else. Callers that arrive while a connect is
// in flight wait for it rather than dialing again; a failed connect leaves the
// store disconnected so the next call retries. After Close every call fails
// with ErrClosed, and a dial that finishes after Close is disconnected at once.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sakif/blog-api/internal/repository"
)

const dialTimeout = 30 * time.Second

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("mongodb: store closed")

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	blogsCollection      = "blogs"
)

var _ repository.Store = (*Store)(nil)

type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
)

func (s connState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

type dialFunc func(ctx context.Context) (*mongo.Client, error)

type disconnectFunc func(client *mongo.Client) error

// Store is a lazily connected MongoDB database handle.
type Store struct {
	uri        string
	dbName     string
	logger     *slog.Logger
	dial       dialFunc
	disconnect disconnectFunc
	now        func() time.Time

	mu      sync.Mutex
	state   connState
	closed  bool
	ready   chan struct{} // closed when the in-flight connect finishes
	client  *mongo.Client
	lastErr error
}

// New returns a Store for the given URI and database name. It does not connect.
func New(uri, dbName string, logger *slog.Logger) *Store {
	s := &Store{
		uri:        uri,
		dbName:     dbName,
		logger:     logger,
		disconnect: disconnectClient,
		now:        time.Now,
	}
	s.dial = s.dialMongo
	return s
}

// dialMongo connects, verifies the server answers, and makes sure the unique
// indexes on users exist.
func (s *Store) dialMongo(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: pinging: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(s.dbName)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("mongodb: creating user indexes: %w", err)
	}

	_, err = db.Collection(blogsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongodb: creating blog indexes: %w", err)
	}
	return nil
}

// connect returns the shared client, starting a dial if none is in flight.
func (s *Store) connect(ctx context.Context) (*mongo.Client, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}

	switch s.state {
	case stateConnected:
		client := s.client
		s.mu.Unlock()
		return client, nil

	case stateConnecting:
		s.logger.Debug("waiting for mongodb connection")

	default:
		s.state = stateConnecting
		s.ready = make(chan struct{})
		go s.runDial(s.ready)
	}
	ready := s.ready
	s.mu.Unlock()

	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateConnected {
		return s.client, nil
	}
	return nil, s.lastErr
}

// runDial performs one dial and publishes the outcome, then closes ready.
func (s *Store) runDial(ready chan struct{}) {
	defer close(ready)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	client, err := s.dial(ctx)

	s.mu.Lock()
	switch {
	case err != nil:
		s.state = stateDisconnected
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("mongodb connection failed", slog.String("error", err.Error()))

	case s.closed:
		s.state = stateDisconnected
		s.lastErr = ErrClosed
		s.mu.Unlock()
		s.logger.Info("mongodb store closed during connect; disconnecting")
		if err := s.disconnect(client); err != nil {
			s.logger.Error("disconnecting late mongodb client", slog.String("error", err.Error()))
		}

	default:
		s.state = stateConnected
		s.client = client
		s.lastErr = nil
		s.mu.Unlock()
		s.logger.Info("connected to mongodb", slog.String("database", s.dbName))
	}
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.dbName).Collection(name), nil
}

// timestamp returns the current time at BSON Date (millisecond) precision.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Ping connects if necessary and checks the primary answers.
func (s *Store) Ping(ctx context.Context) error {
	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping: %w", err)
	}
	return nil
}

// Close disconnects if a connection was ever made. A dial still in flight is
// disconnected when it finishes. The store cannot be reused afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	client := s.client
	s.client = nil
	if s.state == stateConnected {
		s.state = stateDisconnected
	}
	s.mu.Unlock()

	if client == nil {
		return nil
	}
	return s.disconnect(client)
}

func disconnectClient(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("mongodb: disconnecting: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository {
	return &UserCollection{store: s}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &CategoryCollection{store: s}
}

func (s *Store) Blogs() repository.BlogRepository {
	return &BlogCollection{store: s}
}
