package greeterserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	greetinghttpmapper "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/http/mapper"
	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// GreetingAPI wires HTTP transport with the greeting log service and workflows.
type GreetingAPI struct {
	service   greetingports.Service
	workflows greetingports.WorkflowOrchestrator
}

// NewGreetingAPI creates a GreetingAPI. workflows may be nil.
func NewGreetingAPI(service greetingports.Service, workflows greetingports.WorkflowOrchestrator) GreetingAPI {
	return GreetingAPI{service: service, workflows: workflows}
}

// Post /api/v1/say-hello
// Record a greeting
func (api *GreetingAPI) SayHello(c *gin.Context) {
	var payload SayHelloRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := greetinghttpmapper.ToCreateGreetingInput(toTransportSayHello(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: result.Message})
}

func (api *GreetingAPI) create(ctx context.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	if api.workflows != nil {
		return api.workflows.CreateGreeting(ctx, input)
	}
	return api.service.Create(ctx, input)
}

// Get /api/v1/say-hello
// List greetings recorded at or after min_date
func (api *GreetingAPI) ListGreetings(c *gin.Context) {
	var minDate *string
	if err := runtime.BindQueryParameter("form", true, false, domain.FieldMinDate, c.Request.URL.Query(), &minDate); err != nil {
		respondServiceError(c, validation.New(validation.Violation{
			Field:      domain.FieldMinDate,
			Constraint: validation.ConstraintFormat,
			Message:    err.Error(),
		}))
		return
	}
	input, err := greetinghttpmapper.ToListGreetingsInput(minDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.service.List(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportGreetings(greetinghttpmapper.FromProjectionList(result)))
}

func toTransportSayHello(model SayHelloRequest) greetinghttpmapper.SayHelloRequest {
	return greetinghttpmapper.SayHelloRequest{
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Age:       model.Age,
	}
}

func fromTransportGreetings(list []greetinghttpmapper.Greeting) []Greeting {
	result := make([]Greeting, 0, len(list))
	for _, item := range list {
		result = append(result, Greeting{Name: item.Name, Timestamp: item.Timestamp})
	}
	return result
}
