package property

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/requestcontext"
)

type ResolverSuite struct {
	suite.Suite
	store    *InMemory
	resolver *Resolver
	ctx      context.Context
}

func (s *ResolverSuite) SetupTest() {
	s.store = NewInMemory()
	s.resolver = NewResolver(s.store, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.ctx = context.Background()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestResolve() {
	s.Run("creates on first sight with active defaults", func() {
		p, err := s.resolver.Resolve(s.ctx, "123 Main St", "Austin", "TX", "")
		s.Require().NoError(err)
		s.Equal(StatusActive, p.Status)
		s.Equal(0, p.TotalFlags)
		s.False(p.VerifiedScam)
		s.Nil(p.FirstFlagged)
	})

	s.Run("is idempotent for the same normalized identity", func() {
		first, err := s.resolver.Resolve(s.ctx, "123 Main St", "Austin", "TX", "")
		s.Require().NoError(err)

		second, err := s.resolver.Resolve(s.ctx, "  123  MAIN st ", " austin", "tx ", "")
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
	})

	s.Run("keeps the submitter's casing on the created record", func() {
		p, err := s.resolver.Resolve(s.ctx, "55 Elm Street", "Portland", "OR", "USA")
		s.Require().NoError(err)
		s.Equal("55 Elm Street", p.Address)
		s.Equal("Portland", p.City)
	})
}

// TestResolve_ConcurrentFirstTimers checks the creation-race invariant:
// N concurrent resolutions of one never-seen key yield N successes that all
// reference exactly one stored property.
func (s *ResolverSuite) TestResolve_ConcurrentFirstTimers() {
	const n = 32
	ids := make([]id.PropertyID, n)

	g, ctx := errgroup.WithContext(s.ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			p, err := s.resolver.Resolve(ctx, "77 Race Way", "Denver", "CO", "")
			if err != nil {
				return err
			}
			ids[i] = p.ID
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	for _, got := range ids[1:] {
		s.Equal(ids[0], got)
	}

	stored, err := s.store.FindByKey(s.ctx, NewIdentityKey("77 Race Way", "Denver", "CO", ""))
	s.Require().NoError(err)
	s.Equal(ids[0], stored.ID)
}

func (s *ResolverSuite) TestTouch() {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, fixed)

	p, err := s.resolver.Resolve(s.ctx, "8 Clock Ln", "Reno", "NV", "")
	s.Require().NoError(err)

	s.Require().NoError(s.resolver.Touch(ctx, p))
	found, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(found.LastChecked.Equal(fixed))
}

func (s *ResolverSuite) TestRecordFlag() {
	s.Run("first flag sets firstFlagged and flips status once", func() {
		fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(s.ctx, fixed)

		p, err := s.resolver.Resolve(s.ctx, "13 Scam St", "Miami", "FL", "")
		s.Require().NoError(err)

		flagged, err := s.resolver.RecordFlag(ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(1, flagged.TotalFlags)
		s.Equal(StatusFlagged, flagged.Status)
		s.Require().NotNil(flagged.FirstFlagged)
		s.True(flagged.FirstFlagged.Equal(fixed))

		// The second flag only increments; firstFlagged stays immutable.
		later := requestcontext.WithTime(s.ctx, fixed.Add(48*time.Hour))
		again, err := s.resolver.RecordFlag(later, p.ID)
		s.Require().NoError(err)
		s.Equal(2, again.TotalFlags)
		s.True(again.FirstFlagged.Equal(fixed))
	})

	s.Run("unknown property maps to not found", func() {
		_, err := s.resolver.RecordFlag(s.ctx, id.NewPropertyID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ResolverSuite) TestGet() {
	_, err := s.resolver.Get(s.ctx, id.NewPropertyID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
