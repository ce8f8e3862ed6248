package greeterserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	greetingsmemory "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/memory"
	greetingsworkflows "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/workflows"
	greetingsapp "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	pingapp "github.com/Apurer/go-gin-greeter-api/internal/domains/ping/application"
	apierrors "github.com/Apurer/go-gin-greeter-api/internal/shared/errors"
)

type testServer struct {
	router *gin.Engine
	repo   *greetingsmemory.Repository
}

func newTestServer(t *testing.T, opts ...greetingsapp.Option) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := greetingsmemory.NewRepository()
	service := greetingsapp.NewService(repo, opts...)
	router := NewRouter(ApiHandleFunctions{
		GreetingAPI: NewGreetingAPI(service, greetingsworkflows.NewInlineGreetingWorkflows(service)),
		PingAPI:     NewPingAPI(pingapp.NewService()),
	})
	return testServer{router: router, repo: repo}
}

func (s testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeGreetings(t *testing.T, rec *httptest.ResponseRecorder) []Greeting {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list []Greeting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestSayHello_AdaIsRecordedAndListed(t *testing.T) {
	srv := newTestServer(t)
	before := time.Now().UTC()

	rec := srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"Ada","last_name":"Lovelace","age":28}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, Ada Lovelace"}`, rec.Body.String())
	after := time.Now().UTC()

	list := decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "Ada Lovelace", list[0].Name)
	assert.False(t, list[0].Timestamp.Before(before))
	assert.False(t, list[0].Timestamp.After(after))
}

func TestSayHello_UnderageIsRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"Bob","last_name":"Young","age":17}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	violations, ok := problem.Extensions["violations"].([]any)
	require.True(t, ok)
	require.Len(t, violations, 1)
	assert.Equal(t, "age", violations[0].(map[string]any)["field"])

	assert.Equal(t, 0, srv.repo.Len())
	for _, g := range decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello", "")) {
		assert.NotEqual(t, "Bob Young", g.Name)
	}
}

func TestSayHello_LaxAgeCoercion(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"Ada","last_name":"Lovelace","age":"28"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"Ada","last_name":"Lovelace","age":30.0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, srv.repo.Len())
}

func TestSayHello_SchemaFailuresReportEveryField(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/say-hello", `{"last_name":5,"age":"old"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	violations := problem.Extensions["violations"].([]any)
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"first_name", "last_name", "age"}, fields)
	assert.Equal(t, 0, srv.repo.Len())

	rec = srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"","last_name":"Lovelace","age":"abc"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem = decodeProblem(t, rec)
	constraints := map[string]string{}
	for _, v := range problem.Extensions["violations"].([]any) {
		item := v.(map[string]any)
		constraints[item["field"].(string)] = item["constraint"].(string)
	}
	assert.Equal(t, map[string]string{"first_name": "non_empty", "age": "type"}, constraints)
	assert.Equal(t, 0, srv.repo.Len())
}

func TestSayHello_WhitespaceNameIsAccepted(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":" ","last_name":"Lovelace","age":28}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Hello,   Lovelace"}`, rec.Body.String())
	assert.Equal(t, 1, srv.repo.Len())
}

func TestSayHello_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{"first_name":`, `[1,2]`} {
		rec := srv.do(http.MethodPost, "/api/v1/say-hello", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, apierrors.TypeBadRequest, decodeProblem(t, rec).Type)
	}
	rec := srv.do(http.MethodPost, "/api/v1/say-hello", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGreetings_MinDateFilter(t *testing.T) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := newTestServer(t, greetingsapp.WithClock(func() time.Time { return clock }))

	srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"Old","last_name":"One","age":40}`)
	clock = clock.Add(2 * time.Hour)
	srv.do(http.MethodPost, "/api/v1/say-hello", `{"first_name":"New","last_name":"One","age":40}`)

	all := decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello", ""))
	require.Len(t, all, 2)

	bounded := decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello?min_date="+url.QueryEscape("2024-05-01T11:00:00"), ""))
	require.Len(t, bounded, 1)
	assert.Equal(t, "New One", bounded[0].Name)
	assert.True(t, clock.Equal(bounded[0].Timestamp))

	inclusive := decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello?min_date="+url.QueryEscape("2024-05-01T12:00:00Z"), ""))
	assert.Len(t, inclusive, 1)

	future := decodeGreetings(t, srv.do(http.MethodGet, "/api/v1/say-hello?min_date=2030-01-01", ""))
	assert.Empty(t, future)
}

func TestListGreetings_InvalidMinDate(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/v1/say-hello?min_date=yesterday", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	violations := decodeProblem(t, rec).Extensions["violations"].([]any)
	assert.Equal(t, "min_date", violations[0].(map[string]any)["field"])
}

func TestListGreetings_EmptyStoreIsEmptyArray(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/v1/say-hello", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

type failingRepo struct{}

func (failingRepo) Insert(context.Context, *domain.Greeting) (string, error) {
	return "", errors.New("dial tcp 10.0.0.1:27017: connection refused")
}

func (failingRepo) Find(context.Context, greetingports.Query) ([]*domain.Greeting, error) {
	return []*domain.Greeting{{FirstName: "No", LastName: "Stamp"}}, nil
}

func TestSayHello_StoreAndIntegrityFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := greetingsapp.NewService(failingRepo{})
	router := NewRouter(ApiHandleFunctions{GreetingAPI: NewGreetingAPI(service, nil)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/say-hello", strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace","age":28}`))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apierrors.TypeStore, decodeProblem(t, rec).Type)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/say-hello", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apierrors.TypeIntegrity, decodeProblem(t, rec).Type)
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/v2/nothing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decodeProblem(t, rec).Type)
}
