package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/etenderhq/etender-backend-go/internal/domain/tender"
	"github.com/etenderhq/etender-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type tenderRepositoryImpl struct {
	db *database.DB
}

// NewTenderRepository creates a new tender repository instance
func NewTenderRepository(db *database.DB) tender.TenderRepository {
	return &tenderRepositoryImpl{db: db}
}

// Price bounds live in numeric columns; they cross the wire as text so
// no precision is lost on either side.
func decimalPtrFromText(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q: %w", *s, err)
	}
	return &d, nil
}

func textFromDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

const tenderColumns = `
	id, company_id, name, description,
	start_bid_price::text, max_bid_price::text,
	start_date, end_date, invited_emails, status, awarded_bid_id, created_at
`

func scanTender(row pgx.Row) (tender.Tender, error) {
	var t tender.Tender
	var startPrice, maxPrice *string

	err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&t.Name,
		&t.Description,
		&startPrice,
		&maxPrice,
		&t.StartDate,
		&t.EndDate,
		&t.InvitedEmails,
		&t.Status,
		&t.AwardedBidID,
		&t.CreatedAt,
	)
	if err != nil {
		return tender.Tender{}, err
	}

	if t.StartBidPrice, err = decimalPtrFromText(startPrice); err != nil {
		return tender.Tender{}, err
	}
	if t.MaxBidPrice, err = decimalPtrFromText(maxPrice); err != nil {
		return tender.Tender{}, err
	}

	return t, nil
}

// Create implements tender.TenderRepository.
func (r *tenderRepositoryImpl) Create(ctx context.Context, t tender.Tender) (tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tenders (
			company_id, name, description, start_bid_price, max_bid_price,
			start_date, end_date, invited_emails, status
		)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9)
		RETURNING ` + tenderColumns

	created, err := scanTender(q.QueryRow(ctx, query,
		t.CompanyID,
		t.Name,
		t.Description,
		textFromDecimalPtr(t.StartBidPrice),
		textFromDecimalPtr(t.MaxBidPrice),
		t.StartDate,
		t.EndDate,
		t.InvitedEmails,
		t.Status,
	))
	if err != nil {
		return tender.Tender{}, fmt.Errorf("failed to create tender: %w", err)
	}

	return created, nil
}

// GetByID implements tender.TenderRepository.
func (r *tenderRepositoryImpl) GetByID(ctx context.Context, id string) (tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id = $1`

	found, err := scanTender(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tender.Tender{}, tender.ErrTenderNotFound
		}
		return tender.Tender{}, fmt.Errorf("failed to get tender by id: %w", err)
	}

	return found, nil
}

// Update implements tender.TenderRepository.
func (r *tenderRepositoryImpl) Update(ctx context.Context, t tender.Tender) (tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tenders
		SET name = $1, description = $2,
			start_bid_price = $3::numeric, max_bid_price = $4::numeric,
			start_date = $5, end_date = $6, invited_emails = $7, status = $8
		WHERE id = $9
		RETURNING ` + tenderColumns

	updated, err := scanTender(q.QueryRow(ctx, query,
		t.Name,
		t.Description,
		textFromDecimalPtr(t.StartBidPrice),
		textFromDecimalPtr(t.MaxBidPrice),
		t.StartDate,
		t.EndDate,
		t.InvitedEmails,
		t.Status,
		t.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tender.Tender{}, tender.ErrTenderNotFound
		}
		return tender.Tender{}, fmt.Errorf("failed to update tender: %w", err)
	}

	return updated, nil
}

// ListByCompany implements tender.TenderRepository.
func (r *tenderRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenders: %w", err)
	}
	defer rows.Close()

	return collectTenders(rows)
}

// ListByInvitedEmail implements tender.TenderRepository.
func (r *tenderRepositoryImpl) ListByInvitedEmail(ctx context.Context, email string) ([]tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE $1 = ANY(invited_emails) ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenders by invited email: %w", err)
	}
	defer rows.Close()

	return collectTenders(rows)
}

func collectTenders(rows pgx.Rows) ([]tender.Tender, error) {
	var tenders []tender.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tender row: %w", err)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tender rows: %w", err)
	}
	return tenders, nil
}

// SetAwarded implements tender.TenderRepository. The WHERE clause keeps
// the award transition one-way even under concurrent award calls.
func (r *tenderRepositoryImpl) SetAwarded(ctx context.Context, id, bidID string) (tender.Tender, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tenders
		SET awarded_bid_id = $1, status = $2
		WHERE id = $3 AND awarded_bid_id IS NULL
		RETURNING ` + tenderColumns

	awarded, err := scanTender(q.QueryRow(ctx, query, bidID, tender.StatusAwarded, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row exists but was already awarded, or it is gone entirely.
			var exists bool
			if checkErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tenders WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
				return tender.Tender{}, fmt.Errorf("failed to check tender existence: %w", checkErr)
			}
			if exists {
				return tender.Tender{}, tender.ErrAlreadyAwarded
			}
			return tender.Tender{}, tender.ErrTenderNotFound
		}
		return tender.Tender{}, fmt.Errorf("failed to award tender: %w", err)
	}

	return awarded, nil
}
