package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresOfferStore implements domain.OfferStore using PostgreSQL
type PostgresOfferStore struct {
	db *sqlx.DB
}

// NewPostgresOfferStore creates a new PostgresOfferStore
func NewPostgresOfferStore(db *sqlx.DB) *PostgresOfferStore {
	return &PostgresOfferStore{db: db}
}

// postgresOffer represents an offer row
type postgresOffer struct {
	ID              int64   `db:"id"`
	SellerID        int64   `db:"seller_id"`
	SellerNetworkID string  `db:"seller_network_id"`
	SellerName      string  `db:"seller_name"`
	Status          string  `db:"status"`
	PurchaseID      *string `db:"purchase_id"`
	TransportID     *string `db:"transport_id"`
	BuyerID         *int64  `db:"buyer_id"`
	CarrierID       *int64  `db:"carrier_id"`
	BuyerZipCode    *string `db:"buyer_zip_code"`
	SearchIndexID   string  `db:"search_index_id"`

	VehicleVIN       string `db:"vehicle_vin"`
	VehicleYear      string `db:"vehicle_year"`
	VehicleMake      string `db:"vehicle_make"`
	VehicleModel     string `db:"vehicle_model"`
	VehicleTrim      string `db:"vehicle_trim"`
	VehicleBodyType  string `db:"vehicle_body_type"`
	VehicleCabType   string `db:"vehicle_cab_type"`
	VehicleDoorCount int    `db:"vehicle_door_count"`
	VehicleFuelType  string `db:"vehicle_fuel_type"`
	VehicleBodyStyle string `db:"vehicle_body_style"`
	VehicleUsage     string `db:"vehicle_usage"`
	VehicleZipCode   string `db:"vehicle_zip_code"`

	OwnershipType      string `db:"ownership_type"`
	OwnershipTitleType string `db:"ownership_title_type"`

	Mileage                     int    `db:"mileage"`
	IsMileageUnverifiable       bool   `db:"is_mileage_unverifiable"`
	DrivetrainCondition         string `db:"drivetrain_condition"`
	KeyOrFobAvailable           string `db:"key_or_fob_available"`
	WorkingBatteryInstalled     string `db:"working_battery_installed"`
	AllTiresInflated            string `db:"all_tires_inflated"`
	WheelsRemoved               string `db:"wheels_removed"`
	WheelsRemovedDriverFront    bool   `db:"wheels_removed_driver_front"`
	WheelsRemovedDriverRear     bool   `db:"wheels_removed_driver_rear"`
	WheelsRemovedPassengerFront bool   `db:"wheels_removed_passenger_front"`
	WheelsRemovedPassengerRear  bool   `db:"wheels_removed_passenger_rear"`
	BodyPanelsIntact            string `db:"body_panels_intact"`
	BodyDamageFree              string `db:"body_damage_free"`
	MirrorsLightsGlassIntact    string `db:"mirrors_lights_glass_intact"`
	InteriorIntact              string `db:"interior_intact"`
	FloodFireDamageFree         string `db:"flood_fire_damage_free"`
	EngineTransmissionCondition string `db:"engine_transmission_condition"`
	AirbagsDeployed             string `db:"airbags_deployed"`

	CreatedAt      time.Time `db:"created_at"`
	LastModifiedAt time.Time `db:"last_modified_at"`
	Version        int       `db:"version"`
	OldVersion     int       `db:"old_version"`
}

const offerColumns = `
	id, seller_id, seller_network_id, seller_name, status,
	purchase_id, transport_id, buyer_id, carrier_id, buyer_zip_code, search_index_id,
	vehicle_vin, vehicle_year, vehicle_make, vehicle_model, vehicle_trim,
	vehicle_body_type, vehicle_cab_type, vehicle_door_count, vehicle_fuel_type,
	vehicle_body_style, vehicle_usage, vehicle_zip_code,
	ownership_type, ownership_title_type,
	mileage, is_mileage_unverifiable, drivetrain_condition, key_or_fob_available,
	working_battery_installed, all_tires_inflated, wheels_removed,
	wheels_removed_driver_front, wheels_removed_driver_rear,
	wheels_removed_passenger_front, wheels_removed_passenger_rear,
	body_panels_intact, body_damage_free, mirrors_lights_glass_intact, interior_intact,
	flood_fire_damage_free, engine_transmission_condition, airbags_deployed,
	created_at, last_modified_at, version`

const insertOfferQuery = `
	INSERT INTO offers (
		seller_id, seller_network_id, seller_name, status,
		purchase_id, transport_id, buyer_id, carrier_id, buyer_zip_code, search_index_id,
		vehicle_vin, vehicle_year, vehicle_make, vehicle_model, vehicle_trim,
		vehicle_body_type, vehicle_cab_type, vehicle_door_count, vehicle_fuel_type,
		vehicle_body_style, vehicle_usage, vehicle_zip_code,
		ownership_type, ownership_title_type,
		mileage, is_mileage_unverifiable, drivetrain_condition, key_or_fob_available,
		working_battery_installed, all_tires_inflated, wheels_removed,
		wheels_removed_driver_front, wheels_removed_driver_rear,
		wheels_removed_passenger_front, wheels_removed_passenger_rear,
		body_panels_intact, body_damage_free, mirrors_lights_glass_intact, interior_intact,
		flood_fire_damage_free, engine_transmission_condition, airbags_deployed,
		created_at, last_modified_at, version
	) VALUES (
		:seller_id, :seller_network_id, :seller_name, :status,
		:purchase_id, :transport_id, :buyer_id, :carrier_id, :buyer_zip_code, :search_index_id,
		:vehicle_vin, :vehicle_year, :vehicle_make, :vehicle_model, :vehicle_trim,
		:vehicle_body_type, :vehicle_cab_type, :vehicle_door_count, :vehicle_fuel_type,
		:vehicle_body_style, :vehicle_usage, :vehicle_zip_code,
		:ownership_type, :ownership_title_type,
		:mileage, :is_mileage_unverifiable, :drivetrain_condition, :key_or_fob_available,
		:working_battery_installed, :all_tires_inflated, :wheels_removed,
		:wheels_removed_driver_front, :wheels_removed_driver_rear,
		:wheels_removed_passenger_front, :wheels_removed_passenger_rear,
		:body_panels_intact, :body_damage_free, :mirrors_lights_glass_intact, :interior_intact,
		:flood_fire_damage_free, :engine_transmission_condition, :airbags_deployed,
		:created_at, :last_modified_at, :version
	) RETURNING id`

// The seller snapshot and created_at are written once and never updated
const updateOfferQuery = `
	UPDATE offers SET
		status = :status,
		purchase_id = :purchase_id, transport_id = :transport_id,
		buyer_id = :buyer_id, carrier_id = :carrier_id, buyer_zip_code = :buyer_zip_code,
		vehicle_vin = :vehicle_vin, vehicle_year = :vehicle_year, vehicle_make = :vehicle_make,
		vehicle_model = :vehicle_model, vehicle_trim = :vehicle_trim,
		vehicle_body_type = :vehicle_body_type, vehicle_cab_type = :vehicle_cab_type,
		vehicle_door_count = :vehicle_door_count, vehicle_fuel_type = :vehicle_fuel_type,
		vehicle_body_style = :vehicle_body_style, vehicle_usage = :vehicle_usage,
		vehicle_zip_code = :vehicle_zip_code,
		ownership_type = :ownership_type, ownership_title_type = :ownership_title_type,
		mileage = :mileage, is_mileage_unverifiable = :is_mileage_unverifiable,
		drivetrain_condition = :drivetrain_condition, key_or_fob_available = :key_or_fob_available,
		working_battery_installed = :working_battery_installed, all_tires_inflated = :all_tires_inflated,
		wheels_removed = :wheels_removed,
		wheels_removed_driver_front = :wheels_removed_driver_front,
		wheels_removed_driver_rear = :wheels_removed_driver_rear,
		wheels_removed_passenger_front = :wheels_removed_passenger_front,
		wheels_removed_passenger_rear = :wheels_removed_passenger_rear,
		body_panels_intact = :body_panels_intact, body_damage_free = :body_damage_free,
		mirrors_lights_glass_intact = :mirrors_lights_glass_intact, interior_intact = :interior_intact,
		flood_fire_damage_free = :flood_fire_damage_free,
		engine_transmission_condition = :engine_transmission_condition,
		airbags_deployed = :airbags_deployed,
		last_modified_at = :last_modified_at,
		version = :version
	WHERE id = :id AND version = :old_version`

var offerSortColumns = map[string]string{
	domain.SortByCreatedAt:    "created_at",
	domain.SortByStatus:       "status",
	domain.SortByVehicleMake:  "vehicle_make",
	domain.SortByVehicleModel: "vehicle_model",
}

// FindByID finds an offer by id
func (r *PostgresOfferStore) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	return findOffer(ctx, r.db, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
}

// Add inserts the offer and sets the id assigned by the database
func (r *PostgresOfferStore) Add(ctx context.Context, offer *domain.Offer) error {
	rows, err := r.db.NamedQueryContext(ctx, insertOfferQuery, toPostgresOffer(offer))
	if err != nil {
		return errors.Wrap(err, "failed to insert offer")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return errors.Wrap(err, "failed to insert offer")
		}
		return errors.New("insert offer returned no id")
	}

	if err := rows.Scan(&offer.ID); err != nil {
		return errors.Wrap(err, "failed to read offer id")
	}

	return nil
}

// Update persists the offer if the stored version is the one it was read at
func (r *PostgresOfferStore) Update(ctx context.Context, offer *domain.Offer) error {
	return updateOffer(ctx, r.db, offer)
}

// List returns one page of offers matching the query
func (r *PostgresOfferStore) List(ctx context.Context, q domain.OfferQuery) (*domain.OfferPage, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if q.Status != nil {
		args = append(args, q.Status.String())
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.CreatedAfter != nil {
		args = append(args, q.CreatedAfter.UTC())
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if q.CreatedBefore != nil {
		args = append(args, q.CreatedBefore.UTC())
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM offers`+where, args...); err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	column, ok := offerSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if q.SortDescending {
		direction = "DESC"
	}

	args = append(args, q.PageSize, q.Offset())
	query := fmt.Sprintf(`SELECT %s FROM offers%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		offerColumns, where, column, direction, direction, len(args)-1, len(args))

	var rows []postgresOffer
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	page := &domain.OfferPage{
		Offers:     make([]*domain.Offer, 0, len(rows)),
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	for i := range rows {
		page.Offers = append(page.Offers, toDomainOffer(&rows[i]))
	}

	return page, nil
}

// BeginTx opens a transaction for the assignment saga
func (r *PostgresOfferStore) BeginTx(ctx context.Context) (domain.OfferTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	return &postgresOfferTx{tx: tx}, nil
}

// postgresOfferTx implements domain.OfferTx
type postgresOfferTx struct {
	tx   *sqlx.Tx
	done bool
}

// FindByIDForUpdate reads the offer and locks its row until the transaction ends
func (t *postgresOfferTx) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Offer, error) {
	return findOffer(ctx, t.tx, `SELECT `+offerColumns+` FROM offers WHERE id = $1 FOR UPDATE`, id)
}

func (t *postgresOfferTx) Update(ctx context.Context, offer *domain.Offer) error {
	return updateOffer(ctx, t.tx, offer)
}

func (t *postgresOfferTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Rollback is a no-op once the transaction was committed or rolled back
func (t *postgresOfferTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Wrap(err, "failed to roll back transaction")
	}
	return nil
}

func findOffer(ctx context.Context, q sqlx.QueryerContext, query string, id int64) (*domain.Offer, error) {
	var row postgresOffer
	err := sqlx.GetContext(ctx, q, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find offer")
	}

	return toDomainOffer(&row), nil
}

func updateOffer(ctx context.Context, e sqlx.ExtContext, offer *domain.Offer) error {
	result, err := sqlx.NamedExecContext(ctx, e, updateOfferQuery, toPostgresOffer(offer))
	if err != nil {
		return errors.Wrap(err, "failed to update offer")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}

	if affected == 0 {
		return errors.Wrapf(domain.ErrConcurrentModification, "offer %d at version %d", offer.ID, offer.Version.Previous())
	}

	return nil
}

// toPostgresOffer converts a domain offer to its row
func toPostgresOffer(offer *domain.Offer) *postgresOffer {
	d := offer.Details
	row := &postgresOffer{
		ID:              offer.ID,
		SellerID:        offer.SellerID,
		SellerNetworkID: offer.Seller.NetworkID,
		SellerName:      offer.Seller.Name,
		Status:          offer.Status.String(),
		SearchIndexID:   offer.SearchIndexID.String(),

		VehicleVIN:       d.Vehicle.VIN,
		VehicleYear:      d.Vehicle.Year,
		VehicleMake:      d.Vehicle.Make,
		VehicleModel:     d.Vehicle.Model,
		VehicleTrim:      d.Vehicle.Trim,
		VehicleBodyType:  d.Vehicle.BodyType,
		VehicleCabType:   d.Vehicle.CabType,
		VehicleDoorCount: d.Vehicle.DoorCount,
		VehicleFuelType:  d.Vehicle.FuelType,
		VehicleBodyStyle: d.Vehicle.BodyStyle,
		VehicleUsage:     d.Vehicle.Usage,
		VehicleZipCode:   d.Location.ZipCode,

		OwnershipType:      d.Ownership.Type,
		OwnershipTitleType: d.Ownership.TitleType,

		Mileage:                     d.Condition.Mileage,
		IsMileageUnverifiable:       d.Condition.IsMileageUnverifiable,
		DrivetrainCondition:         d.Condition.DrivetrainCondition,
		KeyOrFobAvailable:           d.Condition.KeyOrFobAvailable,
		WorkingBatteryInstalled:     d.Condition.WorkingBatteryInstalled,
		AllTiresInflated:            d.Condition.AllTiresInflated,
		WheelsRemoved:               d.Condition.WheelsRemoved,
		WheelsRemovedDriverFront:    d.Condition.WheelsRemovedDriverFront,
		WheelsRemovedDriverRear:     d.Condition.WheelsRemovedDriverRear,
		WheelsRemovedPassengerFront: d.Condition.WheelsRemovedPassengerFront,
		WheelsRemovedPassengerRear:  d.Condition.WheelsRemovedPassengerRear,
		BodyPanelsIntact:            d.Condition.BodyPanelsIntact,
		BodyDamageFree:              d.Condition.BodyDamageFree,
		MirrorsLightsGlassIntact:    d.Condition.MirrorsLightsGlassIntact,
		InteriorIntact:              d.Condition.InteriorIntact,
		FloodFireDamageFree:         d.Condition.FloodFireDamageFree,
		EngineTransmissionCondition: d.Condition.EngineTransmissionCondition,
		AirbagsDeployed:             d.Condition.AirbagsDeployed,

		CreatedAt:      offer.Timestamps.CreatedAt,
		LastModifiedAt: offer.Timestamps.UpdatedAt,
		Version:        offer.Version.Value,
		OldVersion:     offer.Version.Previous(),
	}

	if a := offer.Assignment; a != nil {
		row.PurchaseID = &a.PurchaseID
		row.TransportID = &a.TransportID
		row.BuyerID = &a.BuyerID
		row.CarrierID = &a.CarrierID
		row.BuyerZipCode = &a.BuyerZipCode
	}

	return row
}

// toDomainOffer converts a row to a domain offer
func toDomainOffer(row *postgresOffer) *domain.Offer {
	offer := &domain.Offer{
		ID:       row.ID,
		SellerID: row.SellerID,
		Seller: domain.SellerSnapshot{
			NetworkID: row.SellerNetworkID,
			Name:      row.SellerName,
		},
		Details: domain.Details{
			Vehicle: domain.Vehicle{
				VIN:       row.VehicleVIN,
				Year:      row.VehicleYear,
				Make:      row.VehicleMake,
				Model:     row.VehicleModel,
				Trim:      row.VehicleTrim,
				BodyType:  row.VehicleBodyType,
				CabType:   row.VehicleCabType,
				DoorCount: row.VehicleDoorCount,
				FuelType:  row.VehicleFuelType,
				BodyStyle: row.VehicleBodyStyle,
				Usage:     row.VehicleUsage,
			},
			Location: domain.Location{ZipCode: row.VehicleZipCode},
			Ownership: domain.Ownership{
				Type:      row.OwnershipType,
				TitleType: row.OwnershipTitleType,
			},
			Condition: domain.Condition{
				Mileage:                     row.Mileage,
				IsMileageUnverifiable:       row.IsMileageUnverifiable,
				DrivetrainCondition:         row.DrivetrainCondition,
				KeyOrFobAvailable:           row.KeyOrFobAvailable,
				WorkingBatteryInstalled:     row.WorkingBatteryInstalled,
				AllTiresInflated:            row.AllTiresInflated,
				WheelsRemoved:               row.WheelsRemoved,
				WheelsRemovedDriverFront:    row.WheelsRemovedDriverFront,
				WheelsRemovedDriverRear:     row.WheelsRemovedDriverRear,
				WheelsRemovedPassengerFront: row.WheelsRemovedPassengerFront,
				WheelsRemovedPassengerRear:  row.WheelsRemovedPassengerRear,
				BodyPanelsIntact:            row.BodyPanelsIntact,
				BodyDamageFree:              row.BodyDamageFree,
				MirrorsLightsGlassIntact:    row.MirrorsLightsGlassIntact,
				InteriorIntact:              row.InteriorIntact,
				FloodFireDamageFree:         row.FloodFireDamageFree,
				EngineTransmissionCondition: row.EngineTransmissionCondition,
				AirbagsDeployed:             row.AirbagsDeployed,
			},
		},
		Status:        domain.Status(strings.ToLower(row.Status)),
		SearchIndexID: models.ID(row.SearchIndexID),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.LastModifiedAt.UTC(),
		},
		Version: models.Version{Value: row.Version},
	}

	if row.PurchaseID != nil && row.TransportID != nil && row.BuyerID != nil &&
		row.CarrierID != nil && row.BuyerZipCode != nil {
		offer.Assignment = &domain.Assignment{
			PurchaseID:   *row.PurchaseID,
			TransportID:  *row.TransportID,
			BuyerID:      *row.BuyerID,
			CarrierID:    *row.CarrierID,
			BuyerZipCode: *row.BuyerZipCode,
		}
	}

	return offer
}
