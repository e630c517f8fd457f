package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
)

const collectionName = "surveys"

// SurveyRepository persists surveys in one MongoDB collection, keyed by
// surveyId. The connection is lazily re-established when a ping fails
// before an operation.
type SurveyRepository struct {
	mu     sync.Mutex
	client *mongo.Client
	uri    string
	dbName string
}

func NewSurveyRepository(ctx context.Context, uri, dbName string) (*SurveyRepository, error) {
	r := &SurveyRepository{uri: uri, dbName: dbName}

	client, err := Connect(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	r.client = client

	if err := r.ensureIndexes(ctx, client); err != nil {
		return nil, fmt.Errorf("mongodb indexes: %w", err)
	}
	return r, nil
}

func (r *SurveyRepository) coll() *mongo.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client.Database(r.dbName).Collection(collectionName)
}

// ensureIndexes creates the unique surveyId index and the completedAt
// secondary index. Safe to call repeatedly. Takes the client explicitly
// because it runs while the reconnect lock is held.
func (r *SurveyRepository) ensureIndexes(ctx context.Context, client *mongo.Client) error {
	coll := client.Database(r.dbName).Collection(collectionName)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "surveyId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "completedAt", Value: 1}},
		},
	})
	return err
}

// ensureConnected pings first and reconnects once when the ping fails.
func (r *SurveyRepository) ensureConnected(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.Ping(ctx, readpref.Primary()); err == nil {
		return nil
	}

	log.Printf("mongodb ping failed, reconnecting...")
	_ = r.client.Disconnect(context.Background())

	client, err := Connect(ctx, r.uri)
	if err != nil {
		return fmt.Errorf("mongodb reconnect: %w", err)
	}
	r.client = client

	if err := r.ensureIndexes(ctx, client); err != nil {
		return fmt.Errorf("mongodb indexes: %w", err)
	}
	return nil
}

// Save upserts the whole document: replace when the surveyId exists,
// insert otherwise. Never a partial merge.
func (r *SurveyRepository) Save(ctx context.Context, s *domain.Survey) (domain.SaveResult, error) {
	if err := r.ensureConnected(ctx); err != nil {
		return domain.SaveResult{}, err
	}

	res, err := r.coll().ReplaceOne(ctx,
		bson.M{"surveyId": s.SurveyID},
		s,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{
		SurveyID: s.SurveyID,
		Upserted: res.UpsertedCount > 0,
		Modified: res.ModifiedCount > 0,
	}, nil
}

// Get fetches one survey by surveyId
func (r *SurveyRepository) Get(ctx context.Context, id domain.SurveyID) (*domain.Survey, error) {
	if err := r.ensureConnected(ctx); err != nil {
		return nil, err
	}

	var s domain.Survey
	err := r.coll().FindOne(ctx, bson.M{"surveyId": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// All returns every survey, newest completedAt first
func (r *SurveyRepository) All(ctx context.Context) ([]*domain.Survey, error) {
	if err := r.ensureConnected(ctx); err != nil {
		return nil, err
	}

	cur, err := r.coll().Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Survey
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count total surveys in the collection
func (r *SurveyRepository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureConnected(ctx); err != nil {
		return 0, err
	}
	return r.coll().CountDocuments(ctx, bson.D{})
}

// Delete removes one survey, reporting whether a document matched
func (r *SurveyRepository) Delete(ctx context.Context, id domain.SurveyID) (bool, error) {
	if err := r.ensureConnected(ctx); err != nil {
		return false, err
	}
	res, err := r.coll().DeleteOne(ctx, bson.M{"surveyId": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Ping reports connection health without reconnecting
func (r *SurveyRepository) Ping(ctx context.Context) error {
	r.mu.Lock()
	client := r.client
	r.mu.Unlock()
	return client.Ping(ctx, readpref.Primary())
}

// Database name this repository writes to
func (r *SurveyRepository) Database() string {
	return r.dbName
}

// Close releases the underlying client
func (r *SurveyRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
