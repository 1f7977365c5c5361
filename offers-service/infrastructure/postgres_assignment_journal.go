package infrastructure

import (
	"context"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// PostgresAssignmentJournal implements domain.AssignmentJournal. It always
// writes through the pool, never through an offer transaction.
type PostgresAssignmentJournal struct {
	db *sqlx.DB
}

// NewPostgresAssignmentJournal creates a new PostgresAssignmentJournal
func NewPostgresAssignmentJournal(db *sqlx.DB) *PostgresAssignmentJournal {
	return &PostgresAssignmentJournal{db: db}
}

type postgresAssignmentAttempt struct {
	ID           string    `db:"id"`
	OfferID      int64     `db:"offer_id"`
	BuyerID      int64     `db:"buyer_id"`
	CarrierID    int64     `db:"carrier_id"`
	BuyerZipCode string    `db:"buyer_zip_code"`
	State        string    `db:"state"`
	PurchaseID   *string   `db:"purchase_id"`
	TransportID  *string   `db:"transport_id"`
	LastError    string    `db:"last_error"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Start inserts a new attempt
func (j *PostgresAssignmentJournal) Start(ctx context.Context, attempt *domain.AssignmentAttempt) error {
	query := `
		INSERT INTO assignment_attempts (
			id, offer_id, buyer_id, carrier_id, buyer_zip_code, state,
			purchase_id, transport_id, last_error, created_at, updated_at
		) VALUES (
			:id, :offer_id, :buyer_id, :carrier_id, :buyer_zip_code, :state,
			:purchase_id, :transport_id, :last_error, :created_at, :updated_at
		)`

	if _, err := j.db.NamedExecContext(ctx, query, toPostgresAttempt(attempt)); err != nil {
		return errors.Wrap(err, "failed to insert assignment attempt")
	}

	return nil
}

// Save records the progress of an attempt
func (j *PostgresAssignmentJournal) Save(ctx context.Context, attempt *domain.AssignmentAttempt) error {
	query := `
		UPDATE assignment_attempts
		SET state = :state, purchase_id = :purchase_id, transport_id = :transport_id,
			last_error = :last_error, updated_at = :updated_at
		WHERE id = :id`

	result, err := j.db.NamedExecContext(ctx, query, toPostgresAttempt(attempt))
	if err != nil {
		return errors.Wrap(err, "failed to update assignment attempt")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.Errorf("assignment attempt %s not found", attempt.ID)
	}

	return nil
}

// ListUnresolved returns the oldest attempts not in a final state and untouched since updatedBefore
func (j *PostgresAssignmentJournal) ListUnresolved(ctx context.Context, updatedBefore time.Time, limit int) ([]*domain.AssignmentAttempt, error) {
	states := make([]string, 0, len(domain.UnresolvedAttemptStates))
	for _, s := range domain.UnresolvedAttemptStates {
		states = append(states, string(s))
	}

	query := `
		SELECT id, offer_id, buyer_id, carrier_id, buyer_zip_code, state,
			   purchase_id, transport_id, last_error, created_at, updated_at
		FROM assignment_attempts
		WHERE state = ANY($1) AND updated_at < $2
		ORDER BY updated_at
		LIMIT $3`

	var rows []postgresAssignmentAttempt
	if err := j.db.SelectContext(ctx, &rows, query, pq.Array(states), updatedBefore.UTC(), limit); err != nil {
		return nil, errors.Wrap(err, "failed to list unresolved assignment attempts")
	}

	attempts := make([]*domain.AssignmentAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}

	return attempts, nil
}

func toPostgresAttempt(a *domain.AssignmentAttempt) *postgresAssignmentAttempt {
	return &postgresAssignmentAttempt{
		ID:           a.ID.String(),
		OfferID:      a.OfferID,
		BuyerID:      a.BuyerID,
		CarrierID:    a.CarrierID,
		BuyerZipCode: a.BuyerZipCode,
		State:        string(a.State),
		PurchaseID:   nullableString(a.PurchaseID),
		TransportID:  nullableString(a.TransportID),
		LastError:    a.LastError,
		CreatedAt:    a.Timestamps.CreatedAt,
		UpdatedAt:    a.Timestamps.UpdatedAt,
	}
}

func toDomainAttempt(row *postgresAssignmentAttempt) *domain.AssignmentAttempt {
	attempt := &domain.AssignmentAttempt{
		ID:           models.ID(row.ID),
		OfferID:      row.OfferID,
		BuyerID:      row.BuyerID,
		CarrierID:    row.CarrierID,
		BuyerZipCode: row.BuyerZipCode,
		State:        domain.AttemptState(row.State),
		LastError:    row.LastError,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		},
	}
	if row.PurchaseID != nil {
		attempt.PurchaseID = *row.PurchaseID
	}
	if row.TransportID != nil {
		attempt.TransportID = *row.TransportID
	}
	return attempt
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
