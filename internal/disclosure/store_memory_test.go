package disclosure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleLine() *DisclosedCreditLine {
	return &DisclosedCreditLine{
		OwnerStaticID:        "bank-1",
		CounterpartyStaticID: "corp-1",
		Context:              ProductContext{ProductID: "tradeFinance", SubProductID: "rd"},
		Appetite:             boolPtr(true),
		Currency:             strPtr("USD"),
		CreditLimit:          floatPtr(1000),
	}
}

func (s *InMemoryStoreSuite) TestCreateAndLookup() {
	s.Run("create assigns an id and sets timestamps", func() {
		staticID, err := s.store.Create(context.Background(), sampleLine())
		s.Require().NoError(err)
		s.NotEmpty(staticID)

		got, err := s.store.Get(context.Background(), staticID)
		s.Require().NoError(err)
		s.Equal("bank-1", got.OwnerStaticID)
		s.False(got.CreatedAt.IsZero())
		s.Equal(got.CreatedAt, got.UpdatedAt)
	})

	s.Run("find one matches the full triple", func() {
		_, err := s.store.Create(context.Background(), sampleLine())
		s.Require().NoError(err)

		got, err := s.store.FindOne(context.Background(), "bank-1", "corp-1",
			ProductContext{ProductID: "tradeFinance", SubProductID: "rd"})
		s.Require().NoError(err)
		s.Equal("corp-1", got.CounterpartyStaticID)

		_, err = s.store.FindOne(context.Background(), "bank-1", "corp-1",
			ProductContext{ProductID: "tradeFinance", SubProductID: "lc"})
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("get unknown id returns ErrNotFound", func() {
		_, err := s.store.Get(context.Background(), "missing")
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("stored record does not alias caller state", func() {
		line := sampleLine()
		staticID, err := s.store.Create(context.Background(), line)
		s.Require().NoError(err)

		*line.Appetite = false
		got, err := s.store.Get(context.Background(), staticID)
		s.Require().NoError(err)
		s.True(*got.Appetite)
	})
}

func (s *InMemoryStoreSuite) TestUpdate() {
	s.Run("update replaces attributes and bumps updated_at", func() {
		staticID, err := s.store.Create(context.Background(), sampleLine())
		s.Require().NoError(err)

		updated := sampleLine()
		updated.StaticID = staticID
		updated.Appetite = boolPtr(false)
		updated.Currency = nil
		s.Require().NoError(s.store.Update(context.Background(), updated))

		got, err := s.store.Get(context.Background(), staticID)
		s.Require().NoError(err)
		s.False(*got.Appetite)
		s.Nil(got.Currency)
	})

	s.Run("update of unknown id returns ErrNotFound", func() {
		line := sampleLine()
		line.StaticID = "missing"
		s.Require().ErrorIs(s.store.Update(context.Background(), line), ErrNotFound)
	})

	s.Run("update of soft-deleted record returns ErrNotFound", func() {
		staticID, err := s.store.Create(context.Background(), sampleLine())
		s.Require().NoError(err)
		s.Require().NoError(s.store.SoftDelete(context.Background(), staticID))

		line := sampleLine()
		line.StaticID = staticID
		s.Require().ErrorIs(s.store.Update(context.Background(), line), ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestSoftDeleteHidesFromReads() {
	staticID, err := s.store.Create(context.Background(), sampleLine())
	s.Require().NoError(err)
	s.Require().NoError(s.store.SoftDelete(context.Background(), staticID))

	_, err = s.store.Get(context.Background(), staticID)
	s.Require().ErrorIs(err, ErrNotFound)

	_, err = s.store.FindOne(context.Background(), "bank-1", "corp-1",
		ProductContext{ProductID: "tradeFinance", SubProductID: "rd"})
	s.Require().ErrorIs(err, ErrNotFound)

	lines, err := s.store.Find(context.Background(), Filter{OwnerStaticID: "bank-1"})
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *InMemoryStoreSuite) TestFindFiltering() {
	mk := func(owner, counterparty, subProduct string) {
		line := sampleLine()
		line.OwnerStaticID = owner
		line.CounterpartyStaticID = counterparty
		line.Context.SubProductID = subProduct
		_, err := s.store.Create(context.Background(), line)
		s.Require().NoError(err)
	}
	mk("bank-1", "corp-1", "rd")
	mk("bank-1", "corp-2", "rd")
	mk("bank-2", "corp-1", "lc")

	lines, err := s.store.Find(context.Background(), Filter{OwnerStaticID: "bank-1"})
	s.Require().NoError(err)
	s.Len(lines, 2)

	lines, err = s.store.Find(context.Background(), Filter{CounterpartyStaticID: "corp-1", SubProductID: "lc"})
	s.Require().NoError(err)
	s.Len(lines, 1)
	s.Equal("bank-2", lines[0].OwnerStaticID)

	lines, err = s.store.Find(context.Background(), Filter{})
	s.Require().NoError(err)
	s.Len(lines, 3)
}

func (s *InMemoryStoreSuite) TestSummarize() {
	mk := func(counterparty string, appetite, availability *bool) {
		line := sampleLine()
		line.OwnerStaticID = "bank-" + counterparty
		line.CounterpartyStaticID = counterparty
		line.Appetite = appetite
		line.Availability = availability
		_, err := s.store.Create(context.Background(), line)
		s.Require().NoError(err)
	}
	mk("corp-1", boolPtr(true), boolPtr(true))
	mk("corp-2", boolPtr(false), nil)
	mk("corp-2", boolPtr(true), boolPtr(false))

	sums, err := s.store.Summarize(context.Background(),
		ProductContext{ProductID: "tradeFinance", SubProductID: "rd"})
	s.Require().NoError(err)
	s.Require().Len(sums, 2)
	s.Equal(Summary{CounterpartyStaticID: "corp-1", AppetiteCount: 1, AvailabilityCount: 1}, sums[0])
	s.Equal(Summary{CounterpartyStaticID: "corp-2", AppetiteCount: 1, AvailabilityCount: 0}, sums[1])
}
