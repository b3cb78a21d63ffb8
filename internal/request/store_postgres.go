package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"creditlines/internal/disclosure"
)

// PostgresStore persists credit line requests in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `static_id, request_type, status, company_static_id, counterparty_static_id,
	product_id, sub_product_id, comment, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, req *CreditLineRequest) (string, error) {
	staticID := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_line_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		staticID,
		req.RequestType,
		req.Status,
		req.CompanyStaticID,
		req.CounterpartyStaticID,
		req.Context.ProductID,
		req.Context.SubProductID,
		req.Comment,
	)
	if err != nil {
		return "", fmt.Errorf("create credit line request: %w", err)
	}
	return staticID, nil
}

func (s *PostgresStore) Update(ctx context.Context, req *CreditLineRequest) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE credit_line_requests
		SET status = $2, comment = $3, updated_at = now()
		WHERE static_id = $1`,
		req.StaticID, req.Status, req.Comment,
	)
	if err != nil {
		return fmt.Errorf("update credit line request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update credit line request: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, staticID string) (*CreditLineRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM credit_line_requests
		WHERE static_id = $1`,
		staticID,
	)
	req, err := scanRequest(row)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *PostgresStore) FindPendingSent(ctx context.Context, company, counterparty string, pc disclosure.ProductContext) ([]*CreditLineRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM credit_line_requests
		WHERE request_type = $1
		  AND status = $2
		  AND company_static_id = $3
		  AND counterparty_static_id = $4
		  AND product_id = $5
		  AND sub_product_id = $6
		ORDER BY created_at ASC`,
		TypeRequested, StatusPending, company, counterparty, pc.ProductID, pc.SubProductID,
	)
	if err != nil {
		return nil, fmt.Errorf("find pending requests: %w", err)
	}
	defer rows.Close()

	var out []*CreditLineRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*CreditLineRequest, error) {
	var req CreditLineRequest
	err := row.Scan(
		&req.StaticID,
		&req.RequestType,
		&req.Status,
		&req.CompanyStaticID,
		&req.CounterpartyStaticID,
		&req.Context.ProductID,
		&req.Context.SubProductID,
		&req.Comment,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan credit line request: %w", err)
	}
	return &req, nil
}
