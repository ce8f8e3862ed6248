//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-gin-greeter-api/test/pact"

	greeterserver "github.com/Apurer/go-gin-greeter-api/go"
	greetingsmemory "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/memory"
	greetingsobs "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/observability"
	greetingsworkflows "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/workflows"
	greetingsapp "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application"
	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	pingapp "github.com/Apurer/go-gin-greeter-api/internal/domains/ping/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestGreeterProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateGreetingLogEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			return nil, nil
		},
		pacttest.StateGreetingExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			if setup {
				app.seedGreeting(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.repo.Reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo    *greetingsmemory.Repository
	service greetingports.Service
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := greetingsmemory.NewRepository()
	service := greetingsobs.New(greetingsapp.NewService(repo))
	handlers := greeterserver.ApiHandleFunctions{
		GreetingAPI: greeterserver.NewGreetingAPI(service, greetingsworkflows.NewInlineGreetingWorkflows(service)),
		PingAPI:     greeterserver.NewPingAPI(pingapp.NewService()),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = greeterserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:    repo,
		service: service,
		server:  server,
	}
}

func (a *contractProviderApp) seedGreeting(t testing.TB) {
	t.Helper()
	_, err := a.service.Create(context.Background(), greetingtypes.CreateGreetingInput{
		FirstName: pacttest.ExampleFirstName,
		LastName:  pacttest.ExampleLastName,
		Age:       pacttest.ExampleAge,
	})
	require.NoError(t, err)
}
