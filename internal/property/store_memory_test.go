package property

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

type PropertyStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *PropertyStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestPropertyStoreSuite(t *testing.T) {
	suite.Run(t, new(PropertyStoreSuite))
}

func (s *PropertyStoreSuite) newProperty(address string) *Property {
	return &Property{
		ID:          id.NewPropertyID(),
		Address:     address,
		City:        "Austin",
		State:       "TX",
		Status:      StatusActive,
		LastChecked: time.Now(),
	}
}

func (s *PropertyStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds by ID and key", func() {
		p := s.newProperty("123 Main St")
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, p))

		byID, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(p.Address, byID.Address)

		byKey, err := s.store.FindByKey(s.ctx, p.Key())
		s.Require().NoError(err)
		s.Equal(p.ID, byKey.ID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewPropertyID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown key", func() {
		_, err := s.store.FindByKey(s.ctx, NewIdentityKey("9 Nowhere Ln", "Nope", "ZZ", ""))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PropertyStoreSuite) TestIdentityKeyUniqueness() {
	s.Run("rejects second insert for same normalized key", func() {
		first := s.newProperty("456 Oak Ave")
		second := s.newProperty("  456  OAK  ave ")

		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, first))
		err := s.store.CreateIfAbsent(s.ctx, second)
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		// The winner's record is the one the key resolves to.
		found, err := s.store.FindByKey(s.ctx, second.Key())
		s.Require().NoError(err)
		s.Equal(first.ID, found.ID)
	})
}

func (s *PropertyStoreSuite) TestUpdate() {
	s.Run("persists changes", func() {
		p := s.newProperty("789 Pine Rd")
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, p))

		p.Status = StatusFlagged
		s.Require().NoError(s.store.Update(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(StatusFlagged, found.Status)
	})

	s.Run("returns ErrNotFound for non-existent property", func() {
		err := s.store.Update(s.ctx, s.newProperty("ghost"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PropertyStoreSuite) TestExecute() {
	s.Run("mutates under the lock", func() {
		p := s.newProperty("1 Counter Ct")
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, p))

		updated, err := s.store.Execute(s.ctx, p.ID, nil, func(p *Property) {
			p.TotalFlags++
		})
		s.Require().NoError(err)
		s.Equal(1, updated.TotalFlags)
	})

	s.Run("does not lose concurrent increments", func() {
		p := s.newProperty("2 Counter Ct")
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, p))

		const n = 64
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := s.store.Execute(s.ctx, p.ID, nil, func(p *Property) {
					p.TotalFlags++
				})
				s.NoError(err)
			}()
		}
		wg.Wait()

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(n, found.TotalFlags)
	})

	s.Run("propagates validation failures without mutating", func() {
		p := s.newProperty("3 Counter Ct")
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, p))

		_, err := s.store.Execute(s.ctx, p.ID,
			func(*Property) error { return sentinel.ErrInvalidState },
			func(p *Property) { p.TotalFlags = 99 },
		)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(0, found.TotalFlags)
	})
}
