// Package mongodb stores the record families in a MongoDB collection, one
// document per family. Saves run in a multi-document transaction, so the
// server must be a replica set (a single-node one is enough).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osse101/PigFarmBot_Go/internal/database/docstore"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// CollectionName holds the family documents.
const CollectionName = "economy_documents"

// familyDocument is the stored shape. Body keeps the JSON text verbatim so
// decimal balances never pass through BSON numbers.
type familyDocument struct {
	Family    string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Backend is the MongoDB document backend.
type Backend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials uri and verifies the connection.
func Connect(ctx context.Context, uri, dbName string) (*Backend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", "database", dbName)
	return &Backend{
		client: client,
		coll:   client.Database(dbName).Collection(CollectionName),
	}, nil
}

// NewStore connects and returns a store.
func NewStore(ctx context.Context, uri, dbName string) (*docstore.Store, error) {
	b, err := Connect(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}
	return docstore.New(b), nil
}

func (b *Backend) Begin(context.Context, []repository.Family) (docstore.Session, error) {
	return &session{b: b}, nil
}

// Close closes the MongoDB connection.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

type session struct {
	b *Backend
}

func (s *session) Load(ctx context.Context, family repository.Family) ([]byte, error) {
	var doc familyDocument
	err := s.b.coll.FindOne(ctx, bson.M{"_id": string(family)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s document: %w", family, err)
	}
	return []byte(doc.Body), nil
}

func (s *session) Save(ctx context.Context, docs map[repository.Family][]byte) error {
	sess, err := s.b.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongodb session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, f := range repository.Families {
			body, ok := docs[f]
			if !ok {
				continue
			}
			doc := familyDocument{Family: string(f), Body: string(body), UpdatedAt: now}
			if _, err := s.b.coll.ReplaceOne(sc, bson.M{"_id": doc.Family}, doc, options.Replace().SetUpsert(true)); err != nil {
				return nil, fmt.Errorf("failed to save %s document: %w", f, err)
			}
		}
		return nil, nil
	})
	return err
}

func (s *session) Abort(context.Context) error { return nil }
