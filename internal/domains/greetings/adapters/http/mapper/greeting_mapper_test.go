package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

func TestToCreateGreetingInput_AgeCoercion(t *testing.T) {
	cases := []struct {
		name string
		age  any
		want int
	}{
		{"float integral", float64(28), 28},
		{"int", 42, 42},
		{"numeric string", "28", 28},
		{"padded string", " 19 ", 19},
		{"json number", json.Number("30"), 30},
		{"json number float form", json.Number("30.0"), 30},
		{"below minimum passes coercion", float64(17), 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := ToCreateGreetingInput(SayHelloRequest{FirstName: "Ada", LastName: "Lovelace", Age: tc.age})
			require.NoError(t, err)
			assert.Equal(t, tc.want, in.Age)
			assert.Equal(t, "Ada", in.FirstName)
		})
	}
}

func TestToCreateGreetingInput_AgeRejected(t *testing.T) {
	for name, age := range map[string]any{
		"fractional":  28.5,
		"word":        "twenty",
		"bool":        true,
		"object":      map[string]any{"v": 1},
		"huge":        1e20,
		"huge string": "99999999999999999999",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToCreateGreetingInput(SayHelloRequest{FirstName: "Ada", LastName: "Lovelace", Age: age})
			require.ErrorIs(t, err, validation.ErrValidation)
			violations := validation.Violations(err)
			require.Len(t, violations, 1)
			assert.Equal(t, domain.FieldAge, violations[0].Field)
			assert.Equal(t, validation.ConstraintType, violations[0].Constraint)
		})
	}
}

func TestToCreateGreetingInput_MissingAndWrongTypes(t *testing.T) {
	_, err := ToCreateGreetingInput(SayHelloRequest{LastName: 12})
	require.Error(t, err)
	got := map[string]string{}
	for _, v := range validation.Violations(err) {
		got[v.Field] = v.Constraint
	}
	assert.Equal(t, map[string]string{
		domain.FieldFirstName: validation.ConstraintRequired,
		domain.FieldLastName:  validation.ConstraintType,
		domain.FieldAge:       validation.ConstraintRequired,
	}, got)
}

func TestToCreateGreetingInput_CoercionAndDomainViolationsTogether(t *testing.T) {
	_, err := ToCreateGreetingInput(SayHelloRequest{FirstName: "", LastName: "Lovelace", Age: "abc"})
	require.ErrorIs(t, err, validation.ErrValidation)

	got := map[string]string{}
	for _, v := range validation.Violations(err) {
		got[v.Field] = v.Constraint
	}
	assert.Equal(t, map[string]string{
		domain.FieldFirstName: validation.ConstraintNonEmpty,
		domain.FieldAge:       validation.ConstraintType,
	}, got)

	_, err = ToCreateGreetingInput(SayHelloRequest{FirstName: true, LastName: "", Age: 17})
	got = map[string]string{}
	for _, v := range validation.Violations(err) {
		got[v.Field] = v.Constraint
	}
	assert.Equal(t, map[string]string{
		domain.FieldFirstName: validation.ConstraintType,
		domain.FieldLastName:  validation.ConstraintNonEmpty,
		domain.FieldAge:       validation.ConstraintMinimum,
	}, got)
}

func TestToListGreetingsInput(t *testing.T) {
	in, err := ToListGreetingsInput(nil)
	require.NoError(t, err)
	assert.Nil(t, in.MinDate)

	blank := ""
	in, err = ToListGreetingsInput(&blank)
	require.NoError(t, err)
	assert.Nil(t, in.MinDate)

	for raw, want := range map[string]time.Time{
		"2024-05-01T10:00:00Z":             time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01T12:00:00+02:00":        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01T10:00:00.123456":       time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC),
		"2024-05-01T10:00":                 time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01":                       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-05-01 10:00:00":              time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	} {
		value := raw
		in, err := ToListGreetingsInput(&value)
		require.NoError(t, err, raw)
		require.NotNil(t, in.MinDate, raw)
		assert.True(t, want.Equal(*in.MinDate), "%s parsed as %s", raw, in.MinDate)
	}

	bad := "yesterday"
	_, err = ToListGreetingsInput(&bad)
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Equal(t, domain.FieldMinDate, validation.Violations(err)[0].Field)
}

func TestFromProjectionList(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FromProjectionList([]domain.Projection{{Name: "A B", Timestamp: at}, {Name: "C D", Timestamp: at}})
	require.Len(t, out, 2)
	assert.Equal(t, Greeting{Name: "A B", Timestamp: at}, out[0])
	assert.Equal(t, "C D", out[1].Name)
}
