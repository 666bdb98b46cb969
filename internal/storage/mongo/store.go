package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/julianstephens/qingka/internal/constants"
)

const (
	collectionName = "kv"
	opTimeout      = 10 * time.Second
)

type entry struct {
	ID        string    `bson:"_id"`
	Namespace string    `bson:"namespace"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type Store struct {
	uri    string
	dbName string
	client *mongo.Client
	col    *mongo.Collection
}

func New(uri string) *Store {
	return &Store{
		uri:    uri,
		dbName: DatabaseName(uri),
	}
}

// IsConnString reports whether config is a MongoDB URI.
func IsConnString(config string) bool {
	return strings.HasPrefix(config, "mongodb://") || strings.HasPrefix(config, "mongodb+srv://")
}

// DatabaseName returns the database named in the URI path, or the app name.
func DatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return constants.AppName
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return constants.AppName
	}
	return name
}

func docID(namespace, key string) string {
	return namespace + "/" + key
}

func (s *Store) connect(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	s.client = client
	s.col = client.Database(s.dbName).Collection(collectionName)
	return nil
}

func (s *Store) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return err
	}

	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "namespace", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.connect(ctx)
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.col = nil
	return err
}

// GetConfigPath returns a non-sensitive identifier instead of the URI.
func (s *Store) GetConfigPath() string {
	return "mongodb/" + s.dbName
}

func (s *Store) Get(namespace, key string) (string, bool, error) {
	if s.col == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var e entry
	err := s.col.FindOne(ctx, bson.M{"_id": docID(namespace, key)}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
	}
	return e.Value, true, nil
}

func (s *Store) Set(namespace, key, value string) error {
	if s.col == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	e := entry{
		ID:        docID(namespace, key),
		Namespace: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Store) Remove(namespace, key string) error {
	if s.col == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": docID(namespace, key)}); err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Store) Keys(namespace string) ([]string, error) {
	if s.col == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "key", Value: 1}}).
		SetProjection(bson.M{"key": 1})
	cur, err := s.col.Find(ctx, bson.M{"namespace": namespace}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys in %s: %w", namespace, err)
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var e entry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		keys = append(keys, e.Key)
	}
	return keys, cur.Err()
}
