package greeterserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-greeter-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Unmatched
// routes answer with a 404 problem document.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	router.NoRoute(apierrors.DefaultResponder.NoRoute)
	return router
}

// DefaultHandleFunc is the default handler for routes that are not wired.
func DefaultHandleFunc(c *gin.Context) {
	respondProblem(c, apierrors.ProblemDetail{
		Type:   apierrors.TypeInternal,
		Title:  "Not Implemented",
		Status: http.StatusNotImplemented,
	})
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the GreetingAPI part of the API
	GreetingAPI GreetingAPI
	// Routes for the PingAPI part of the API
	PingAPI PingAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"SayHello",
			http.MethodPost,
			"/api/v1/say-hello",
			handleFunctions.GreetingAPI.SayHello,
		},
		{
			"ListGreetings",
			http.MethodGet,
			"/api/v1/say-hello",
			handleFunctions.GreetingAPI.ListGreetings,
		},
		{
			"EchoPing",
			http.MethodPost,
			"/api/v1/ping",
			handleFunctions.PingAPI.EchoPing,
		},
		{
			"GetPing",
			http.MethodGet,
			"/api/v1/ping",
			handleFunctions.PingAPI.GetPing,
		},
	}
}
