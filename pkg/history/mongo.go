package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planline/planline/pkg/errors"
)

const runsCollection = "runs"

// MongoStore persists runs to a MongoDB collection, for deployments where
// several serving processes share one history.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the runs collection of
// the named database. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(runsCollection),
	}, nil
}

// Save persists a run. Saving the same ID twice replaces the record.
func (s *MongoStore) Save(ctx context.Context, run *Run) error {
	doc, err := toDoc(run)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"id": run.ID.String()},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save run")
	}
	return nil
}

// Get retrieves a run by ID.
func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	var doc runDoc
	err := s.coll.FindOne(ctx, bson.M{"id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run not found: %s", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query run")
	}
	return fromDoc(&doc)
}

// List returns the most recent runs, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query runs")
	}
	defer cur.Close(ctx)

	var runs []*Run
	for cur.Next(ctx) {
		var doc runDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode run")
		}
		run, err := fromDoc(&doc)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "iterate runs")
	}
	return runs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// runDoc stores the queryable fields as top-level keys and the full record
// as a JSON payload, the same split the sqlite backend uses.
type runDoc struct {
	ID        string    `bson:"id"`
	CreatedAt time.Time `bson:"created_at"`
	DictHash  string    `bson:"dict_hash"`
	Crossings int       `bson:"crossings"`
	Planar    bool      `bson:"planar"`
	Payload   []byte    `bson:"payload"`
}

func toDoc(run *Run) (*runDoc, error) {
	payload, err := json.Marshal(run)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal run")
	}
	return &runDoc{
		ID:        run.ID.String(),
		CreatedAt: run.CreatedAt,
		DictHash:  run.DictHash,
		Crossings: run.Crossings,
		Planar:    run.Planar,
		Payload:   payload,
	}, nil
}

func fromDoc(doc *runDoc) (*Run, error) {
	var run Run
	if err := json.Unmarshal(doc.Payload, &run); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "unmarshal run")
	}
	return &run, nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
