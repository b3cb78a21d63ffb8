package disclosure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// liveClause is the single place the soft-delete exclusion is written; every
// read path appends it.
const liveClause = "deleted_at IS NULL"

// PostgresStore persists disclosed credit lines in PostgreSQL. A partial
// unique index on the live triple backs the engine's find-then-write branch:
// a concurrent duplicate create fails instead of leaving two live records.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const disclosedColumns = `static_id, owner_static_id, counterparty_static_id, product_id, sub_product_id,
	appetite, currency, availability, availability_amount, credit_limit, extra_data,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, line *DisclosedCreditLine) (string, error) {
	staticID := uuid.NewString()
	extra, err := marshalExtra(line.ExtraData)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO disclosed_credit_lines (`+disclosedColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`,
		staticID,
		line.OwnerStaticID,
		line.CounterpartyStaticID,
		line.Context.ProductID,
		line.Context.SubProductID,
		line.Appetite,
		line.Currency,
		line.Availability,
		line.AvailabilityAmount,
		line.CreditLimit,
		extra,
	)
	if err != nil {
		return "", fmt.Errorf("create disclosed credit line: %w", err)
	}
	return staticID, nil
}

func (s *PostgresStore) Update(ctx context.Context, line *DisclosedCreditLine) error {
	extra, err := marshalExtra(line.ExtraData)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE disclosed_credit_lines
		SET appetite = $2,
			currency = $3,
			availability = $4,
			availability_amount = $5,
			credit_limit = $6,
			extra_data = $7,
			updated_at = now()
		WHERE static_id = $1 AND `+liveClause,
		line.StaticID,
		line.Appetite,
		line.Currency,
		line.Availability,
		line.AvailabilityAmount,
		line.CreditLimit,
		extra,
	)
	if err != nil {
		return fmt.Errorf("update disclosed credit line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update disclosed credit line: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindOne(ctx context.Context, owner, counterparty string, pc ProductContext) (*DisclosedCreditLine, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+disclosedColumns+`
		FROM disclosed_credit_lines
		WHERE owner_static_id = $1
		  AND counterparty_static_id = $2
		  AND product_id = $3
		  AND sub_product_id = $4
		  AND `+liveClause,
		owner, counterparty, pc.ProductID, pc.SubProductID,
	)
	return scanLine(row)
}

func (s *PostgresStore) Get(ctx context.Context, staticID string) (*DisclosedCreditLine, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+disclosedColumns+`
		FROM disclosed_credit_lines
		WHERE static_id = $1 AND `+liveClause,
		staticID,
	)
	return scanLine(row)
}

func (s *PostgresStore) Find(ctx context.Context, filter Filter) ([]*DisclosedCreditLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+disclosedColumns+`
		FROM disclosed_credit_lines
		WHERE ($1 = '' OR owner_static_id = $1)
		  AND ($2 = '' OR counterparty_static_id = $2)
		  AND ($3 = '' OR product_id = $3)
		  AND ($4 = '' OR sub_product_id = $4)
		  AND `+liveClause+`
		ORDER BY updated_at DESC`,
		filter.OwnerStaticID, filter.CounterpartyStaticID, filter.ProductID, filter.SubProductID,
	)
	if err != nil {
		return nil, fmt.Errorf("find disclosed credit lines: %w", err)
	}
	defer rows.Close()

	var out []*DisclosedCreditLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Summarize(ctx context.Context, pc ProductContext) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT counterparty_static_id,
			COUNT(*) FILTER (WHERE appetite IS TRUE),
			COUNT(*) FILTER (WHERE availability IS TRUE)
		FROM disclosed_credit_lines
		WHERE product_id = $1 AND sub_product_id = $2 AND `+liveClause+`
		GROUP BY counterparty_static_id
		ORDER BY counterparty_static_id`,
		pc.ProductID, pc.SubProductID,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize disclosed credit lines: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.CounterpartyStaticID, &sum.AppetiteCount, &sum.AvailabilityCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// SoftDelete marks a record deleted. Administrative; the engine never calls it.
func (s *PostgresStore) SoftDelete(ctx context.Context, staticID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE disclosed_credit_lines SET deleted_at = now()
		WHERE static_id = $1 AND `+liveClause,
		staticID,
	)
	if err != nil {
		return fmt.Errorf("soft delete disclosed credit line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete disclosed credit line: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (*DisclosedCreditLine, error) {
	var (
		line     DisclosedCreditLine
		appetite sql.NullBool
		currency sql.NullString
		avail    sql.NullBool
		amount   sql.NullFloat64
		limit    sql.NullFloat64
		extra    []byte
	)
	err := row.Scan(
		&line.StaticID,
		&line.OwnerStaticID,
		&line.CounterpartyStaticID,
		&line.Context.ProductID,
		&line.Context.SubProductID,
		&appetite,
		&currency,
		&avail,
		&amount,
		&limit,
		&extra,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan disclosed credit line: %w", err)
	}
	if appetite.Valid {
		line.Appetite = &appetite.Bool
	}
	if currency.Valid {
		line.Currency = &currency.String
	}
	if avail.Valid {
		line.Availability = &avail.Bool
	}
	if amount.Valid {
		line.AvailabilityAmount = &amount.Float64
	}
	if limit.Valid {
		line.CreditLimit = &limit.Float64
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &line.ExtraData); err != nil {
			return nil, fmt.Errorf("decode extra data: %w", err)
		}
	}
	return &line, nil
}

func marshalExtra(extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("encode extra data: %w", err)
	}
	return b, nil
}
