package greeterserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	apierrors "github.com/Apurer/go-gin-greeter-api/internal/shared/errors"
)

var serviceResponder = apierrors.NewChainedResponder("",
	mapIntegrityError,
	mapStoreError,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondBadRequest reports a body that could not be decoded.
func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// respondServiceError turns application errors into problem documents.
// Store and integrity failures never leak their cause to the client.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	serviceResponder.RespondError(c, err)
}

func mapIntegrityError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, domain.ErrIntegrity) {
		return apierrors.ErrIntegrity.WithDetail("a stored greeting could not be read"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapStoreError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, greetingports.ErrStore) {
		return apierrors.ErrStoreUnavailable.WithDetail("the greeting store is unavailable"), true
	}
	return apierrors.ProblemDetail{}, false
}
