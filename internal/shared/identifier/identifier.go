// Package identifier converts between the document store's native ObjectID
// and the canonical string form used on every public surface.
package identifier

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// ErrInvalidIdentifier is returned for strings that do not encode an ObjectID.
var ErrInvalidIdentifier = errors.New("invalid identifier")

type kind uint8

const (
	kindUnset kind = iota
	kindNative
	kindString
)

// ID holds either a native ObjectID or its string encoding.
type ID struct {
	kind   kind
	native primitive.ObjectID
	text   string
}

// FromObjectID wraps a native identifier.
func FromObjectID(oid primitive.ObjectID) ID {
	return ID{kind: kindNative, native: oid}
}

// FromString wraps a string that is expected to encode an ObjectID.
func FromString(s string) ID {
	return ID{kind: kindString, text: s}
}

// New returns a freshly generated identifier in canonical form.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Normalize resolves id to its canonical lower-case 24 hex character form.
func Normalize(id ID) (string, error) {
	switch id.kind {
	case kindNative:
		return id.native.Hex(), nil
	case kindString:
		oid, err := primitive.ObjectIDFromHex(id.text)
		if err != nil {
			return "", invalid(id.text)
		}
		return oid.Hex(), nil
	default:
		return "", invalid("")
	}
}

// Parse converts a string identifier to the native type.
func Parse(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, invalid(s)
	}
	return oid, nil
}

func invalid(value string) error {
	return &validation.Error{
		Violations: []validation.Violation{{
			Field:      "id",
			Constraint: validation.ConstraintIdentifier,
			Message:    fmt.Sprintf("%q is not a 24 character hex object id", value),
		}},
		Cause: ErrInvalidIdentifier,
	}
}
