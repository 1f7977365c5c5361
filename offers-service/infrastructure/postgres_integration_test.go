//go:build integration

package infrastructure

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type PostgresSuite struct {
	suite.Suite
	db       *sqlx.DB
	offers   *PostgresOfferStore
	sellers  *PostgresSellerRepository
	journal  *PostgresAssignmentJournal
	now      time.Time
	sellerID int64
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.Require().NotNil(tcDB, "tcDB must be initialized in TestMain")

	s.db = tcDB
	s.offers = NewPostgresOfferStore(tcDB)
	s.sellers = NewPostgresSellerRepository(tcDB)
	s.journal = NewPostgresAssignmentJournal(tcDB)
}

func (s *PostgresSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `TRUNCATE assignment_attempts, offers, sellers RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)

	s.now = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	s.sellerID = s.insertSeller("Acme Motors", "NET-1")
}

func (s *PostgresSuite) insertSeller(name, networkID string) int64 {
	var id int64
	err := s.db.GetContext(context.Background(), &id,
		`INSERT INTO sellers (network_id, name, email) VALUES ($1, $2, $3) RETURNING id`,
		networkID, name, name+"@example.com")
	s.Require().NoError(err)
	return id
}

func (s *PostgresSuite) newOffer(vehicleMake string, createdAt time.Time) *domain.Offer {
	seller, err := s.sellers.FindByID(context.Background(), s.sellerID)
	s.Require().NoError(err)
	s.Require().NotNil(seller)

	offer, err := domain.CreateOffer(seller, domain.Details{
		Vehicle: domain.Vehicle{
			VIN:       "1HGCM82633A004352",
			Year:      "2019",
			Make:      vehicleMake,
			Model:     "Accord",
			DoorCount: 4,
		},
		Location:  domain.Location{ZipCode: "12345"},
		Ownership: domain.Ownership{Type: "owned", TitleType: "clean"},
		Condition: domain.Condition{Mileage: 42000, WheelsRemovedDriverFront: true},
	}, createdAt)
	s.Require().NoError(err)

	s.Require().NoError(s.offers.Add(context.Background(), offer))
	return offer
}

func (s *PostgresSuite) query(q domain.OfferQuery) domain.OfferQuery {
	normalized, err := q.Normalize()
	s.Require().NoError(err)
	return normalized
}

func (s *PostgresSuite) TestAddAndFindByID() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)
	s.Require().NotZero(offer.ID)

	got, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(offer.ID, got.ID)
	s.Equal(s.sellerID, got.SellerID)
	s.Equal("Acme Motors", got.Seller.Name)
	s.Equal(domain.StatusOffered, got.Status)
	s.Equal(offer.SearchIndexID, got.SearchIndexID)
	s.Equal(offer.Details, got.Details)
	s.Nil(got.Assignment)
	s.Equal(1, got.Version.Value)
	s.True(s.now.Equal(got.Timestamps.CreatedAt))
}

func (s *PostgresSuite) TestFindByID_Missing() {
	got, err := s.offers.FindByID(context.Background(), 999)
	s.NoError(err)
	s.Nil(got)
}

func (s *PostgresSuite) TestUpdate_VersionConflict() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)

	first, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)
	second, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)

	model := "Civic"
	s.Require().NoError(first.Update(domain.DetailsPatch{Model: &model}, s.now.Add(time.Minute)))
	s.Require().NoError(s.offers.Update(ctx, first))

	s.Require().NoError(second.Cancel(s.now.Add(2 * time.Minute)))
	err = s.offers.Update(ctx, second)
	s.ErrorIs(err, domain.ErrConcurrentModification)

	stored, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusOffered, stored.Status)
	s.Equal("Civic", stored.Details.Vehicle.Model)
	s.Equal(2, stored.Version.Value)
}

func (s *PostgresSuite) TestTx_AssignCommit() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)

	tx, err := s.offers.BeginTx(ctx)
	s.Require().NoError(err)
	defer func() { s.NoError(tx.Rollback()) }()

	locked, err := tx.FindByIDForUpdate(ctx, offer.ID)
	s.Require().NoError(err)
	s.Require().NotNil(locked)

	s.Require().NoError(locked.Assign(domain.Assignment{
		PurchaseID:   "P1",
		TransportID:  "T1",
		BuyerID:      123,
		CarrierID:    456,
		BuyerZipCode: "67890",
	}, s.now.Add(time.Minute)))
	s.Require().NoError(tx.Update(ctx, locked))
	s.Require().NoError(tx.Commit())

	stored, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusAssigned, stored.Status)
	s.Require().NotNil(stored.Assignment)
	s.Equal("P1", stored.Assignment.PurchaseID)
	s.Equal("T1", stored.Assignment.TransportID)
	s.Equal(int64(123), stored.Assignment.BuyerID)
	s.Equal(int64(456), stored.Assignment.CarrierID)
	s.Equal("67890", stored.Assignment.BuyerZipCode)
}

func (s *PostgresSuite) TestTx_RollbackLeavesOfferUntouched() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)

	tx, err := s.offers.BeginTx(ctx)
	s.Require().NoError(err)

	locked, err := tx.FindByIDForUpdate(ctx, offer.ID)
	s.Require().NoError(err)
	s.Require().NoError(locked.Cancel(s.now.Add(time.Minute)))
	s.Require().NoError(tx.Update(ctx, locked))
	s.Require().NoError(tx.Rollback())

	stored, err := s.offers.FindByID(ctx, offer.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusOffered, stored.Status)
	s.Equal(1, stored.Version.Value)
}

func (s *PostgresSuite) TestTx_LockSerializesWriters() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)

	tx, err := s.offers.BeginTx(ctx)
	s.Require().NoError(err)
	locked, err := tx.FindByIDForUpdate(ctx, offer.ID)
	s.Require().NoError(err)

	var (
		wg          sync.WaitGroup
		secondState domain.Status
		secondErr   error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		other, err := s.offers.BeginTx(ctx)
		if err != nil {
			secondErr = err
			return
		}
		defer func() { _ = other.Rollback() }()

		row, err := other.FindByIDForUpdate(ctx, offer.ID)
		if err != nil {
			secondErr = err
			return
		}
		secondState = row.Status
	}()

	s.Require().NoError(locked.Assign(domain.Assignment{
		PurchaseID:   "P1",
		TransportID:  "T1",
		BuyerID:      1,
		CarrierID:    2,
		BuyerZipCode: "00000",
	}, s.now.Add(time.Minute)))
	s.Require().NoError(tx.Update(ctx, locked))
	s.Require().NoError(tx.Commit())

	wg.Wait()
	s.Require().NoError(secondErr)
	s.Equal(domain.StatusAssigned, secondState)
}

func (s *PostgresSuite) TestList_FilterSortAndPage() {
	ctx := context.Background()
	honda := s.newOffer("Honda", s.now)
	s.newOffer("Audi", s.now.Add(time.Hour))
	ford := s.newOffer("Ford", s.now.Add(2*time.Hour))

	s.Require().NoError(honda.Cancel(s.now.Add(3 * time.Hour)))
	s.Require().NoError(s.offers.Update(ctx, honda))

	page, err := s.offers.List(ctx, s.query(domain.OfferQuery{Page: 1, PageSize: 2}))
	s.Require().NoError(err)
	s.Equal(3, page.TotalCount)
	s.Equal(2, page.TotalPages())
	s.Require().Len(page.Offers, 2)
	s.Equal(ford.ID, page.Offers[0].ID)

	byMake, err := s.offers.List(ctx, s.query(domain.OfferQuery{SortBy: domain.SortByVehicleMake}))
	s.Require().NoError(err)
	s.Require().Len(byMake.Offers, 3)
	s.Equal("Audi", byMake.Offers[0].Details.Vehicle.Make)
	s.Equal("Honda", byMake.Offers[2].Details.Vehicle.Make)

	offered := domain.StatusOffered
	after := s.now.Add(30 * time.Minute)
	filtered, err := s.offers.List(ctx, s.query(domain.OfferQuery{Status: &offered, CreatedAfter: &after}))
	s.Require().NoError(err)
	s.Equal(2, filtered.TotalCount)
	for _, o := range filtered.Offers {
		s.Equal(domain.StatusOffered, o.Status)
	}

	empty, err := s.offers.List(ctx, s.query(domain.OfferQuery{Page: 5}))
	s.Require().NoError(err)
	s.Equal(3, empty.TotalCount)
	s.Empty(empty.Offers)
}

func (s *PostgresSuite) TestSellers_List() {
	ctx := context.Background()
	s.insertSeller("Zeta Cars", "NET-2")
	s.insertSeller("Beta Autos", "NET-3")

	sellers, total, err := s.sellers.List(ctx, 1, 2)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(sellers, 2)
	s.Equal("Acme Motors", sellers[0].Name)
	s.Equal("Beta Autos", sellers[1].Name)

	missing, err := s.sellers.FindByID(ctx, 999)
	s.NoError(err)
	s.Nil(missing)
}

func (s *PostgresSuite) TestJournal_Lifecycle() {
	ctx := context.Background()
	offer := s.newOffer("Honda", s.now)

	stale := domain.NewAssignmentAttempt(offer.ID, 123, 456, "67890", s.now)
	s.Require().NoError(s.journal.Start(ctx, stale))
	stale.PurchaseCreated("P1", s.now.Add(time.Second))
	s.Require().NoError(s.journal.Save(ctx, stale))

	done := domain.NewAssignmentAttempt(offer.ID, 1, 2, "00000", s.now)
	s.Require().NoError(s.journal.Start(ctx, done))
	done.Complete(s.now.Add(time.Second))
	s.Require().NoError(s.journal.Save(ctx, done))

	fresh := domain.NewAssignmentAttempt(offer.ID, 3, 4, "11111", s.now.Add(time.Hour))
	s.Require().NoError(s.journal.Start(ctx, fresh))

	unresolved, err := s.journal.ListUnresolved(ctx, s.now.Add(time.Minute), 10)
	s.Require().NoError(err)
	s.Require().Len(unresolved, 1)
	s.Equal(stale.ID, unresolved[0].ID)
	s.Equal(domain.AttemptPurchaseCreated, unresolved[0].State)
	s.Equal("P1", unresolved[0].PurchaseID)
	s.Empty(unresolved[0].TransportID)

	missing := domain.NewAssignmentAttempt(offer.ID, 5, 6, "22222", s.now)
	s.Error(s.journal.Save(ctx, missing))
}
