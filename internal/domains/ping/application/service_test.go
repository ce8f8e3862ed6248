package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

func TestEcho_ReturnsPayloadVerbatim(t *testing.T) {
	svc := NewService()
	for _, body := range []string{
		`{"a":1,"b":[true,null]}`,
		`{}`,
		`[1,2,3]`,
		`"text"`,
		`{"nested":{"deep":{"x":"y"}}}`,
	} {
		reply, err := svc.Echo(context.Background(), json.RawMessage(body))
		require.NoError(t, err, body)
		assert.Equal(t, Pong, reply.Message)
		assert.JSONEq(t, body, string(reply.Data))
	}
}

func TestEcho_RejectsInvalidPayload(t *testing.T) {
	svc := NewService()
	for _, body := range []string{"", "   ", "{", "not json"} {
		_, err := svc.Echo(context.Background(), json.RawMessage(body))
		require.ErrorIs(t, err, ErrInvalidPayload, body)
		require.ErrorIs(t, err, validation.ErrValidation, body)
	}
}

func TestEcho_DoesNotAliasInput(t *testing.T) {
	payload := json.RawMessage(`{"a":1}`)
	reply, err := NewService().Echo(context.Background(), payload)
	require.NoError(t, err)
	payload[2] = 'z'
	assert.JSONEq(t, `{"a":1}`, string(reply.Data))
}

func TestStatus(t *testing.T) {
	reply, err := NewService().Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Pong, reply.Message)
	assert.Nil(t, reply.Data)
}
