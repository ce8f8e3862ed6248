package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// ErrInvalidInput signals the request violated a field constraint.
var ErrInvalidInput = errors.New("invalid greeting input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, validation.ErrValidation) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrStore) || errors.Is(err, domain.ErrIntegrity) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrStore, err)
}
