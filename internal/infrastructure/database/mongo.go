package database

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names.
const (
	UsersCollection          = "users"
	AppointmentsCollection   = "appointments"
	PrescriptionsCollection  = "prescriptions"
	MedicalRecordsCollection = "medicalrecords"
)

// MongoConfig holds connection settings for the document store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	RetryAttempts  int
	RetryInterval  time.Duration
	WatchInterval  time.Duration
}

// Mongo owns the connection to the document store. It replaces ambient
// global handles: the client is connected once, watched in the background
// and closed explicitly.
type Mongo struct {
	client  *mongo.Client
	db      *mongo.Database
	cfg     MongoConfig
	healthy atomic.Bool
	done    chan struct{}
}

// Connect dials the store, retrying with a fixed delay a bounded number of
// times before treating the failure as fatal.
func Connect(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	var client *mongo.Client

	backoff := retry.WithMaxRetries(uint64(cfg.RetryAttempts), retry.NewConstant(cfg.RetryInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.URI).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetServerSelectionTimeout(cfg.ConnectTimeout).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err != nil {
			return retry.RetryableError(err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		if err := c.Ping(pingCtx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return retry.RetryableError(err)
		}

		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	m := &Mongo{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		done:   make(chan struct{}),
	}
	m.healthy.Store(true)
	return m, nil
}

// Database returns the portal database handle.
func (m *Mongo) Database() *mongo.Database { return m.db }

// Healthy reports the state observed by the last watcher ping. Degraded
// requests fail fast at the driver instead of hanging; this flag only feeds
// health reporting.
func (m *Mongo) Healthy() bool { return m.healthy.Load() }

// StartWatcher pings the store on a fixed interval, logging transitions and
// relying on the driver's pool to re-establish dropped connections. It never
// blocks in-flight requests.
func (m *Mongo) StartWatcher() {
	go func() {
		ticker := time.NewTicker(m.cfg.WatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-m.done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnectTimeout)
				err := m.client.Ping(ctx, nil)
				cancel()
				if err != nil {
					if m.healthy.CompareAndSwap(true, false) {
						log.Printf("mongo: connection lost, retrying every %s: %v", m.cfg.WatchInterval, err)
					}
					continue
				}
				if m.healthy.CompareAndSwap(false, true) {
					log.Println("mongo: connection re-established")
				}
			}
		}
	}()
}

// EnsureIndexes creates the indexes the repositories depend on. The unique
// email index is what makes concurrent inserts with the same email resolve
// to exactly one success.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	for _, coll := range []string{AppointmentsCollection, PrescriptionsCollection, MedicalRecordsCollection} {
		_, err := m.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Close stops the watcher and disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	close(m.done)
	return m.client.Disconnect(ctx)
}
