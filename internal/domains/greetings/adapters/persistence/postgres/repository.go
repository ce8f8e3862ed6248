package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/identifier"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists greetings in PostgreSQL using GORM. The schema is owned
// by the migrations package.
type Repository struct {
	db    *gorm.DB
	newID func() string
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, newID: identifier.New}
}

// greetingRecord maps a greeting to the say_hello table. Seq is assigned by
// the database and gives the natural insertion order.
type greetingRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(24)"`
	Seq       int64     `gorm:"column:seq;type:bigserial;<-:false"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Age       int       `gorm:"column:age"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_say_hello_timestamp"`
}

func (greetingRecord) TableName() string { return "say_hello" }

// Insert appends a row with a freshly generated ObjectID-compatible id.
func (r *Repository) Insert(ctx context.Context, greeting *domain.Greeting) (string, error) {
	if err := r.ensureDB(); err != nil {
		return "", err
	}
	if greeting == nil {
		return "", errors.New("greeting is nil")
	}
	id, err := identifier.Normalize(identifier.FromString(r.newID()))
	if err != nil {
		return "", err
	}
	record := toRecord(id, greeting)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return id, nil
}

// Find returns rows at or after the bound in insertion order.
func (r *Repository) Find(ctx context.Context, query ports.Query) ([]*domain.Greeting, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Order("seq").Limit(query.EffectiveLimit())
	if query.MinTimestamp != nil {
		tx = tx.Where(`"timestamp" >= ?`, query.MinTimestamp.UTC())
	}
	var records []greetingRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	greetings := make([]*domain.Greeting, 0, len(records))
	for i := range records {
		greetings = append(greetings, records[i].toDomain())
	}
	return greetings, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres greeting repository not configured")
	}
	return nil
}

func toRecord(id string, g *domain.Greeting) greetingRecord {
	return greetingRecord{
		ID:        id,
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Age:       g.Age,
		Timestamp: g.Timestamp.UTC(),
	}
}

func (r greetingRecord) toDomain() *domain.Greeting {
	g := &domain.Greeting{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Age:       r.Age,
	}
	if !r.Timestamp.IsZero() {
		g.Timestamp = r.Timestamp.UTC()
	}
	return g
}
