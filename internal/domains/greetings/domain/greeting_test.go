package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

func TestNewRequest_Valid(t *testing.T) {
	req, err := NewRequest("Ada", "Lovelace", 28)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", req.FullName())
	assert.Equal(t, "Hello, Ada Lovelace", Message(req))
}

func TestNewRequest_AgeBoundary(t *testing.T) {
	_, err := NewRequest("Ada", "Lovelace", MinimumAge)
	require.NoError(t, err)

	_, err = NewRequest("Bob", "Young", MinimumAge-1)
	require.ErrorIs(t, err, validation.ErrValidation)
	violations := validation.Violations(err)
	require.Len(t, violations, 1)
	assert.Equal(t, FieldAge, violations[0].Field)
	assert.Equal(t, validation.ConstraintMinimum, violations[0].Constraint)
}

func TestNewRequest_ReportsEveryViolation(t *testing.T) {
	_, err := NewRequest("", "", 3)
	require.Error(t, err)
	fields := make([]string, 0)
	for _, v := range validation.Violations(err) {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{FieldFirstName, FieldLastName, FieldAge}, fields)
}

func TestNewRequest_WhitespaceNamesAreKept(t *testing.T) {
	req, err := NewRequest(" ", "Lovelace", 28)
	require.NoError(t, err)
	assert.Equal(t, " ", req.FirstName)
	assert.Equal(t, "  Lovelace", req.FullName())
}

func TestProject(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	req, err := NewRequest("Ada", "Lovelace", 28)
	require.NoError(t, err)
	rec := NewGreeting(req, at)
	rec.ID = "507f1f77bcf86cd799439011"

	p, err := Project(rec)
	require.NoError(t, err)
	assert.Equal(t, Projection{Name: "Ada Lovelace", Timestamp: at}, p)
}

func TestProject_MissingTimestamp(t *testing.T) {
	_, err := Project(&Greeting{ID: "507f1f77bcf86cd799439011", FirstName: "A", LastName: "B", Age: 20})
	require.ErrorIs(t, err, ErrIntegrity)
	require.NotErrorIs(t, err, validation.ErrValidation)

	_, err = Project(nil)
	require.ErrorIs(t, err, ErrIntegrity)
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	t1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []*Greeting{
		{FirstName: "Zed", LastName: "Last", Age: 40, Timestamp: t1},
		{FirstName: "Amy", LastName: "First", Age: 30, Timestamp: t0},
	}
	out, err := ProjectAll(records)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Zed Last", out[0].Name)
	assert.Equal(t, "Amy First", out[1].Name)
}
