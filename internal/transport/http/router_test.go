package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"listingguard/internal/alert"
	"listingguard/internal/check"
	checkhandler "listingguard/internal/check/handler"
	"listingguard/internal/jwtauth"
	"listingguard/internal/listing"
	"listingguard/internal/property"
	"listingguard/internal/report"
	reporthandler "listingguard/internal/report/handler"
	"listingguard/internal/watchlist"
	watchhandler "listingguard/internal/watchlist/handler"
)

type RouterSuite struct {
	suite.Suite
	jwt    *jwtauth.Service
	token  string
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	resolver := property.NewResolver(property.NewInMemory(), logger, nil)
	ledger := listing.NewLedger(listing.NewInMemory(), logger)
	board := alert.NewBoard(alert.NewInMemory(), nil, logger, nil)
	registry := report.NewRegistry(report.NewInMemory(), resolver, board, nil, logger, nil)
	checker := check.NewOrchestrator(resolver, ledger, board, registry, nil, logger, nil)
	reporter := report.NewOrchestrator(resolver, registry, logger)
	watcher := watchlist.NewManager(watchlist.NewInMemory(), resolver, nil, logger, nil)

	s.jwt = jwtauth.NewService("test-signing-key", "listingguard", "listingguard-api")
	token, err := s.jwt.GenerateAccessToken(uuid.New(), time.Hour)
	require.NoError(s.T(), err)
	s.token = token

	s.router = NewRouter(Deps{
		Check:     checkhandler.New(checker, resolver, logger),
		Report:    reporthandler.New(reporter, logger),
		Watchlist: watchhandler.New(watcher, logger),
		Auth:      s.jwt,
		Logger:    logger,
	})
}

func (s *RouterSuite) request(method, target string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) TestHealthz() {
	w := s.request(http.MethodGet, "/healthz", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RouterSuite) TestHealthzReportsDegradedDependency() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(Deps{
		Check:     checkhandler.New(nil, nil, logger),
		Report:    reporthandler.New(nil, logger),
		Watchlist: watchhandler.New(nil, logger),
		Auth:      s.jwt,
		Health:    map[string]HealthChecker{"redis": failingHealth{}},
		Logger:    logger,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

func (s *RouterSuite) TestMetricsExposed() {
	w := s.request(http.MethodGet, "/metrics", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RouterSuite) TestAPIRejectsMissingToken() {
	w := s.request(http.MethodPost, "/api/v1/properties/check", check.Request{
		Address: "123 Main St", City: "Austin", State: "TX",
	}, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestAPIRejectsGarbageToken() {
	w := s.request(http.MethodPost, "/api/v1/properties/check", check.Request{
		Address: "123 Main St", City: "Austin", State: "TX",
	}, "not-a-jwt")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestCheckThenReportThenWatchFlow() {
	w := s.request(http.MethodPost, "/api/v1/properties/check", check.Request{
		Address: "123 Main St", City: "Austin", State: "TX",
	}, s.token)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var checkResp struct {
		Property property.Property `json:"property"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &checkResp))
	propertyID := checkResp.Property.ID
	assert.Equal(s.T(), property.StatusActive, checkResp.Property.Status)

	// The id must cross the wire as a UUID string so clients can feed it
	// straight back into the report and lookup endpoints.
	var wire struct {
		Property struct {
			ID string `json:"id"`
		} `json:"property"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &wire))
	require.Equal(s.T(), propertyID.String(), wire.Property.ID)

	w = s.request(http.MethodPost, "/api/v1/reports", report.SubmitRequest{
		PropertyID:  propertyID.String(),
		ScamType:    "wire_fraud",
		Description: "asked for a wire transfer before any viewing",
	}, s.token)
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/api/v1/properties/"+propertyID.String(), nil, s.token)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var fetched property.Property
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(s.T(), property.StatusFlagged, fetched.Status)
	assert.Equal(s.T(), 1, fetched.TotalFlags)

	w = s.request(http.MethodPost, "/api/v1/watchlist", map[string]any{
		"propertyId": propertyID.String(),
	}, s.token)
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/v1/watchlist", nil, s.token)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var listResp struct {
		Watches []watchlist.PropertyWatch `json:"watches"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(s.T(), listResp.Watches, 1)
}

type failingHealth struct{}

func (failingHealth) Health(context.Context) error { return errors.New("connection refused") }
