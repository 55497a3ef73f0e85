package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/atharvakapadnis/JobCraftAI/internal/generate"
	"github.com/atharvakapadnis/JobCraftAI/internal/llm"
	"github.com/atharvakapadnis/JobCraftAI/internal/service"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound     *service.NotFoundError
		precondition *service.PreconditionError
		validation   *ErrValidation
		upstream     *llm.UpstreamError
		shape        *generate.ResponseShapeError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &precondition):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.As(err, &shape):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
