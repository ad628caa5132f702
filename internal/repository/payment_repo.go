package repository

import (
	"database/sql"
	"fmt"

	"parko/internal/db"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Create(p *db.Payment) error {
	query := `
		INSERT INTO payments (booking_id, user_id, amount, pidx, payment_url, status, gateway_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		p.BookingID, p.UserID, p.Amount, p.Pidx, p.PaymentURL, p.Status, p.GatewayStatus,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// ListPending returns every payment still awaiting a terminal gateway state.
func (r *PaymentRepository) ListPending() ([]db.Payment, error) {
	query := `
		SELECT id, booking_id, user_id, amount, pidx, payment_url, transaction_id, status, gateway_status, created_at, updated_at
		FROM payments
		WHERE status = $1
		ORDER BY id`

	rows, err := r.DB.Query(query, db.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("error querying pending payments: %w", err)
	}
	defer rows.Close()

	var payments []db.Payment
	for rows.Next() {
		var p db.Payment
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Pidx, &p.PaymentURL,
			&p.TransactionID, &p.Status, &p.GatewayStatus, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pending payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdateGatewayState persists the state observed at the gateway.
func (r *PaymentRepository) UpdateGatewayState(id int, status, gatewayStatus, transactionID string) error {
	query := `
		UPDATE payments
		SET status = $2, gateway_status = $3, transaction_id = $4, updated_at = NOW()
		WHERE id = $1`
	txn := sql.NullString{String: transactionID, Valid: transactionID != ""}
	_, err := r.DB.Exec(query, id, status, gatewayStatus, txn)
	if err != nil {
		return fmt.Errorf("error updating payment %d: %w", id, err)
	}
	return nil
}
