package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the relational schema for the greeting log.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&greetingRecord{})
}

// Greeting schema mirrors the greetings Postgres adapter.
type greetingRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(24)"`
	Seq       int64     `gorm:"column:seq;type:bigserial;<-:false"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Age       int       `gorm:"column:age"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_say_hello_timestamp"`
}

func (greetingRecord) TableName() string { return "say_hello" }
