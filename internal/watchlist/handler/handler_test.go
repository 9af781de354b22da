package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"listingguard/internal/property"
	"listingguard/internal/watchlist"
	id "listingguard/pkg/domain"
	"listingguard/pkg/requestcontext"
)

type WatchlistHandlerSuite struct {
	suite.Suite
	resolver *property.Resolver
	router   chi.Router
	userID   id.UserID
}

func TestWatchlistHandlerSuite(t *testing.T) {
	suite.Run(t, new(WatchlistHandlerSuite))
}

func (s *WatchlistHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.resolver = property.NewResolver(property.NewInMemory(), logger, nil)
	manager := watchlist.NewManager(watchlist.NewInMemory(), s.resolver, nil, logger, nil)
	s.userID = id.NewUserID()

	s.router = chi.NewRouter()
	New(manager, logger).Register(s.router)
}

func (s *WatchlistHandlerSuite) do(req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req = req.WithContext(requestcontext.WithUserID(req.Context(), s.userID))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *WatchlistHandlerSuite) seedProperty() *property.Property {
	p, err := s.resolver.Resolve(s.T().Context(), "123 Main St", "Austin", "TX", "")
	require.NoError(s.T(), err)
	return p
}

func (s *WatchlistHandlerSuite) TestWatchThenList() {
	p := s.seedProperty()

	body, err := json.Marshal(map[string]any{"propertyId": p.ID.String()})
	require.NoError(s.T(), err)
	w := s.do(httptest.NewRequest(http.MethodPost, "/watchlist", bytes.NewReader(body)), true)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var watchResp map[string]watchlist.PropertyWatch
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &watchResp))
	assert.True(s.T(), watchResp["watch"].NotificationsEnabled)
	assert.Equal(s.T(), watchlist.DefaultAlertTypes(), watchResp["watch"].AlertTypes)

	w = s.do(httptest.NewRequest(http.MethodGet, "/watchlist", nil), true)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var listResp struct {
		Watches    []watchlist.PropertyWatch `json:"watches"`
		Properties []property.Property       `json:"properties"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(s.T(), listResp.Watches, 1)
	require.Len(s.T(), listResp.Properties, 1)
	assert.Equal(s.T(), p.ID, listResp.Properties[0].ID)
}

func (s *WatchlistHandlerSuite) TestWatchDisablesNotifications() {
	p := s.seedProperty()

	body, err := json.Marshal(map[string]any{"propertyId": p.ID.String(), "notificationsEnabled": false})
	require.NoError(s.T(), err)
	w := s.do(httptest.NewRequest(http.MethodPost, "/watchlist", bytes.NewReader(body)), true)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var watchResp map[string]watchlist.PropertyWatch
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &watchResp))
	assert.False(s.T(), watchResp["watch"].NotificationsEnabled)
}

func (s *WatchlistHandlerSuite) TestWatchUnknownProperty() {
	body, err := json.Marshal(map[string]any{"propertyId": id.NewPropertyID().String()})
	require.NoError(s.T(), err)
	w := s.do(httptest.NewRequest(http.MethodPost, "/watchlist", bytes.NewReader(body)), true)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *WatchlistHandlerSuite) TestWatchMalformedPropertyID() {
	w := s.do(httptest.NewRequest(http.MethodPost, "/watchlist", bytes.NewReader([]byte(`{"propertyId":"nope"}`))), true)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *WatchlistHandlerSuite) TestEndpointsRequireAuth() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/watchlist", nil), false)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(httptest.NewRequest(http.MethodPost, "/watchlist", bytes.NewReader([]byte(`{}`))), false)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *WatchlistHandlerSuite) TestListEmpty() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/watchlist", nil), true)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var listResp map[string]json.RawMessage
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.JSONEq(s.T(), `[]`, string(listResp["watches"]))
}
