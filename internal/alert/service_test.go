package alert

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"listingguard/internal/events"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
)

type BoardSuite struct {
	suite.Suite
	ctx   context.Context
	sink  *events.Memory
	board *Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = events.NewMemory()
	s.board = NewBoard(NewInMemory(), s.sink, slog.Default(), nil)
}

func (s *BoardSuite) TestRaiseDefaults() {
	propertyID := id.NewPropertyID()
	createdBy := id.NewUserID()

	a, err := s.board.Raise(s.ctx, propertyID, "WIRE FRAUD", "asked for a wire transfer", "critical", createdBy)
	require.NoError(s.T(), err)

	s.False(a.ID.IsNil())
	s.Equal(propertyID, a.PropertyID)
	s.Equal(TypeDanger, a.AlertType)
	s.Equal("critical", a.Severity)
	s.Equal(createdBy, a.CreatedBy)
	s.Equal(1, a.ScanCount)
	s.Zero(a.Upvotes)
	s.Zero(a.Downvotes)
	s.True(a.IsActive)
	s.False(a.CreatedAt.IsZero())
}

func (s *BoardSuite) TestRaiseSeverityMapsToAlertType() {
	tests := []struct {
		severity string
		want     Type
	}{
		{severity: "critical", want: TypeDanger},
		{severity: "high", want: TypeWarning},
		{severity: "medium", want: TypeWarning},
	}
	for _, tt := range tests {
		s.Run(tt.severity, func() {
			a, err := s.board.Raise(s.ctx, id.NewPropertyID(), "FAKE LISTING", "msg", tt.severity, id.NewUserID())
			require.NoError(s.T(), err)
			s.Equal(tt.want, a.AlertType)
		})
	}
}

func (s *BoardSuite) TestRaiseTruncatesMessage() {
	long := strings.Repeat("x", maxMessageLen+50)

	a, err := s.board.Raise(s.ctx, id.NewPropertyID(), "RENTAL SCAM", long, "high", id.NewUserID())
	require.NoError(s.T(), err)
	s.Len(a.Message, maxMessageLen)
}

func (s *BoardSuite) TestRaiseEmitsEvent() {
	propertyID := id.NewPropertyID()
	_, err := s.board.Raise(s.ctx, propertyID, "SELLER FRAUD", "msg", "critical", id.NewUserID())
	require.NoError(s.T(), err)

	emitted := s.sink.Events()
	require.Len(s.T(), emitted, 1)
	s.Equal(events.TypeAlertRaised, emitted[0].Type)
	s.Equal(propertyID, emitted[0].PropertyID)
	s.Equal("critical", emitted[0].Severity)
}

func (s *BoardSuite) TestBumpScanCountSurvivesRoundTrip() {
	a, err := s.board.Raise(s.ctx, id.NewPropertyID(), "OTHER", "msg", "medium", id.NewUserID())
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.board.BumpScanCount(s.ctx, a.ID))
	require.NoError(s.T(), s.board.BumpScanCount(s.ctx, a.ID))

	alerts, err := s.board.AlertsFor(s.ctx, a.PropertyID)
	require.NoError(s.T(), err)
	require.Len(s.T(), alerts, 1)
	s.Equal(3, alerts[0].ScanCount)
}

func (s *BoardSuite) TestBumpScanCountUnknownAlert() {
	err := s.board.BumpScanCount(s.ctx, id.NewAlertID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
