package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parko/internal/db"
	"parko/internal/entities"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

const slotColumns = `id, owner_id, status, price, address, coordinates, description, vehicle_type, is_active, created_at, updated_at`

func scanSlot(row interface{ Scan(...any) error }) (*db.ParkSlot, error) {
	var s db.ParkSlot
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Status, &s.Price, &s.Address, &s.Coordinates,
		&s.Description, &s.VehicleType, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepository) Create(s *db.ParkSlot) error {
	query := `
		INSERT INTO park_slots (owner_id, status, price, address, coordinates, description, vehicle_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at`
	return r.DB.QueryRow(query,
		s.OwnerID, s.Status, s.Price, s.Address, s.Coordinates, s.Description, s.VehicleType,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SlotRepository) GetByID(id int) (*db.ParkSlot, error) {
	slot, err := scanSlot(r.DB.QueryRow(
		`SELECT `+slotColumns+` FROM park_slots WHERE id = $1 AND is_active`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying park slot %d: %w", id, err)
	}
	return slot, nil
}

func (r *SlotRepository) Update(s *db.ParkSlot) error {
	query := `
		UPDATE park_slots
		SET status = $2, price = $3, address = $4, coordinates = $5, description = $6, vehicle_type = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.DB.QueryRow(query,
		s.ID, s.Status, s.Price, s.Address, s.Coordinates, s.Description, s.VehicleType,
	).Scan(&s.UpdatedAt)
}

func (r *SlotRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM park_slots WHERE id = $1`, id)
	return err
}

func (r *SlotRepository) ListByOwner(ownerID int) ([]db.ParkSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM park_slots WHERE owner_id = $1 AND is_active ORDER BY created_at DESC`
	return r.list(query, ownerID)
}

// List returns active slots matching the filter, newest first. Empty filter
// fields are ignored; the address filter is a case-insensitive substring
// match.
func (r *SlotRepository) List(filter entities.SlotFilter) ([]db.ParkSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM park_slots WHERE is_active`
	args := []any{}
	idx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Price != nil {
		query += fmt.Sprintf(" AND price = $%d", idx)
		args = append(args, *filter.Price)
		idx++
	}
	if filter.Address != "" {
		query += fmt.Sprintf(" AND address ILIKE $%d", idx)
		args = append(args, "%"+filter.Address+"%")
		idx++
	}
	if filter.VehicleType != "" {
		query += fmt.Sprintf(" AND vehicle_type = $%d", idx)
		args = append(args, filter.VehicleType)
		idx++
	}
	query += " ORDER BY created_at DESC"

	return r.list(query, args...)
}

func (r *SlotRepository) list(query string, args ...any) ([]db.ParkSlot, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying park slots: %w", err)
	}
	defer rows.Close()

	var slots []db.ParkSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning park slot: %w", err)
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}
