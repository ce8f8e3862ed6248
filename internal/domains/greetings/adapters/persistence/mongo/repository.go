package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/identifier"
)

// CollectionName is the collection holding the greeting log.
const CollectionName = "say_hello"

const timestampIndexName = "timestamp_1"

var _ ports.Repository = (*Repository)(nil)

// Repository persists greetings in MongoDB.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository binds the repository to the greeting collection of db.
func NewRepository(db *mongo.Database) *Repository {
	if db == nil {
		return &Repository{}
	}
	return &Repository{coll: db.Collection(CollectionName)}
}

// greetingDocument is the stored shape. ID is omitted on insert so the driver
// assigns an ObjectID.
type greetingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Age       int                `bson:"age"`
	Timestamp time.Time          `bson:"timestamp"`
}

// Insert appends one document and returns its canonical id.
func (r *Repository) Insert(ctx context.Context, greeting *domain.Greeting) (string, error) {
	if err := r.ensureCollection(); err != nil {
		return "", err
	}
	if greeting == nil {
		return "", errors.New("greeting is nil")
	}
	res, err := r.coll.InsertOne(ctx, toDocument(greeting))
	if err != nil {
		return "", err
	}
	return insertedID(res.InsertedID)
}

// Find returns documents at or after the bound in natural order.
func (r *Repository) Find(ctx context.Context, query ports.Query) ([]*domain.Greeting, error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	filter := bson.M{}
	if query.MinTimestamp != nil {
		filter[domain.FieldTimestamp] = bson.M{"$gte": query.MinTimestamp.UTC()}
	}
	limit := query.EffectiveLimit()
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	greetings := make([]*domain.Greeting, 0)
	for cursor.Next(ctx) {
		var doc greetingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode %s document: %w", domain.ErrIntegrity, CollectionName, err)
		}
		g, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		greetings = append(greetings, g)
		if len(greetings) == limit {
			break
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return greetings, nil
}

// EnsureIndexes creates the ascending timestamp index used by bounded lists.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if err := r.ensureCollection(); err != nil {
		return err
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: domain.FieldTimestamp, Value: 1}},
		Options: options.Index().SetName(timestampIndexName),
	})
	return err
}

func (r *Repository) ensureCollection() error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb greeting repository not configured")
	}
	return nil
}

func insertedID(raw any) (string, error) {
	switch v := raw.(type) {
	case primitive.ObjectID:
		return identifier.Normalize(identifier.FromObjectID(v))
	case string:
		return identifier.Normalize(identifier.FromString(v))
	default:
		return "", fmt.Errorf("%w: unexpected inserted id type %T", domain.ErrIntegrity, raw)
	}
}

func toDocument(g *domain.Greeting) greetingDocument {
	return greetingDocument{
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Age:       g.Age,
		Timestamp: g.Timestamp.UTC(),
	}
}

func (d greetingDocument) toDomain() (*domain.Greeting, error) {
	g := &domain.Greeting{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Age:       d.Age,
	}
	if !d.ID.IsZero() {
		id, err := identifier.Normalize(identifier.FromObjectID(d.ID))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrIntegrity, err)
		}
		g.ID = id
	}
	if !d.Timestamp.IsZero() {
		g.Timestamp = d.Timestamp.UTC()
	}
	return g, nil
}
