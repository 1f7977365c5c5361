package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresSellerRepository implements domain.SellerRepository using PostgreSQL
type PostgresSellerRepository struct {
	db *sqlx.DB
}

// NewPostgresSellerRepository creates a new PostgresSellerRepository
func NewPostgresSellerRepository(db *sqlx.DB) *PostgresSellerRepository {
	return &PostgresSellerRepository{db: db}
}

type postgresSeller struct {
	ID             int64     `db:"id"`
	NetworkID      string    `db:"network_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	CreatedAt      time.Time `db:"created_at"`
	LastModifiedAt time.Time `db:"last_modified_at"`
}

// FindByID finds a seller by id
func (r *PostgresSellerRepository) FindByID(ctx context.Context, id int64) (*domain.Seller, error) {
	query := `
		SELECT id, network_id, name, email, created_at, last_modified_at
		FROM sellers
		WHERE id = $1`

	var row postgresSeller
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find seller")
	}

	return toDomainSeller(&row), nil
}

// List returns one page of sellers ordered by name, and the total count
func (r *PostgresSellerRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Seller, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sellers`); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count sellers")
	}

	query := `
		SELECT id, network_id, name, email, created_at, last_modified_at
		FROM sellers
		ORDER BY name, id
		LIMIT $1 OFFSET $2`

	var rows []postgresSeller
	if err := r.db.SelectContext(ctx, &rows, query, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, errors.Wrap(err, "failed to list sellers")
	}

	sellers := make([]*domain.Seller, 0, len(rows))
	for i := range rows {
		sellers = append(sellers, toDomainSeller(&rows[i]))
	}

	return sellers, total, nil
}

func toDomainSeller(row *postgresSeller) *domain.Seller {
	return &domain.Seller{
		ID:        row.ID,
		NetworkID: row.NetworkID,
		Name:      row.Name,
		Email:     row.Email,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.LastModifiedAt.UTC(),
		},
	}
}
