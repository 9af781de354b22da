package report

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"listingguard/internal/alert"
	"listingguard/internal/property"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/sentinel"
	"listingguard/pkg/requestcontext"
)

type OrchestratorSuite struct {
	suite.Suite
	ctx          context.Context
	reportedBy   id.UserID
	properties   *property.InMemory
	resolver     *property.Resolver
	board        *alert.Board
	registry     *Registry
	orchestrator *Orchestrator
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	logger := slog.Default()
	s.reportedBy = id.NewUserID()
	s.ctx = requestcontext.WithUserID(context.Background(), s.reportedBy)
	s.properties = property.NewInMemory()
	s.resolver = property.NewResolver(s.properties, logger, nil)
	s.board = alert.NewBoard(alert.NewInMemory(), nil, logger, nil)
	s.registry = NewRegistry(NewInMemory(), s.resolver, s.board, nil, logger, nil)
	s.orchestrator = NewOrchestrator(s.resolver, s.registry, logger)
}

func (s *OrchestratorSuite) TestSubmitByAddressCreatesFlaggedProperty() {
	result, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
		Address:     "123 Main St, Austin, TX",
		ScamType:    "wire_fraud",
		Description: "asked me to wire a deposit before any viewing",
	})
	require.NoError(s.T(), err)
	s.False(result.ReportID.IsNil())
	s.NotEmpty(result.Message)

	p, err := s.resolver.Resolve(s.ctx, "123 Main St", "Austin", "TX", "")
	require.NoError(s.T(), err)

	// The registry's bookkeeping is the only place flags are counted, so a
	// property born on the report path carries exactly one flag.
	s.Equal(1, p.TotalFlags)
	s.Equal(property.StatusFlagged, p.Status)
	require.NotNil(s.T(), p.FirstFlagged)

	alerts, err := s.board.AlertsFor(s.ctx, p.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), alerts, 1)
	s.Equal(alert.TypeDanger, alerts[0].AlertType)
}

func (s *OrchestratorSuite) TestSubmitByAddressWithCountry() {
	_, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
		Address:     "10 King St, Toronto, ON, Canada",
		ScamType:    "other",
		Description: "desc",
	})
	require.NoError(s.T(), err)

	p, err := s.resolver.Resolve(s.ctx, "10 King St", "Toronto", "ON", "Canada")
	require.NoError(s.T(), err)
	s.Equal("Canada", p.Country)
	s.Equal(1, p.TotalFlags)
}

func (s *OrchestratorSuite) TestSubmitByPropertyID() {
	p, err := s.resolver.Resolve(s.ctx, "55 Elm Ave", "Denver", "CO", "")
	require.NoError(s.T(), err)

	result, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
		PropertyID:  p.ID.String(),
		ScamType:    "rental_scam",
		Description: "asked for rent in gift cards",
	})
	require.NoError(s.T(), err)
	s.False(result.ReportID.IsNil())

	flagged, err := s.resolver.Get(s.ctx, p.ID)
	require.NoError(s.T(), err)
	s.Equal(1, flagged.TotalFlags)
}

func (s *OrchestratorSuite) TestSubmitUnknownPropertyID() {
	_, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
		PropertyID:  id.NewPropertyID().String(),
		ScamType:    "other",
		Description: "desc",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *OrchestratorSuite) TestSubmitRejectsShortAddress() {
	tests := []struct {
		name    string
		address string
	}{
		{name: "empty", address: ""},
		{name: "two parts", address: "123 Main St, Austin"},
		{name: "blank parts collapse", address: "123 Main St, , Austin"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
				Address:     tt.address,
				ScamType:    "other",
				Description: "desc",
			})
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func (s *OrchestratorSuite) TestSubmitInvalidReportCreatesNoProperty() {
	tests := []struct {
		name        string
		scamType    string
		description string
	}{
		{name: "blank description", scamType: "wire_fraud", description: "   "},
		{name: "blank scam type", scamType: "", description: "asked for a wire transfer"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
				Address:     "900 Orphan Way, Austin, TX",
				ScamType:    tt.scamType,
				Description: tt.description,
			})
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

			// The rejected report must not leave a fresh property behind.
			key := property.NewIdentityKey("900 Orphan Way", "Austin", "TX", "")
			_, err = s.properties.FindByKey(s.ctx, key)
			s.ErrorIs(err, sentinel.ErrNotFound)
		})
	}
}

func (s *OrchestratorSuite) TestSubmitRepeatedAddressReusesProperty() {
	for i := 0; i < 2; i++ {
		_, err := s.orchestrator.Submit(s.ctx, SubmitRequest{
			Address:     "123 Main St, Austin, TX",
			ScamType:    "other",
			Description: "desc",
		})
		require.NoError(s.T(), err)
	}

	p, err := s.resolver.Resolve(s.ctx, "123 Main St", "Austin", "TX", "")
	require.NoError(s.T(), err)
	s.Equal(2, p.TotalFlags)
}
