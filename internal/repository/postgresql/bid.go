package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/etenderhq/etender-backend-go/internal/domain/bid"
	"github.com/etenderhq/etender-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type bidRepositoryImpl struct {
	db *database.DB
}

// NewBidRepository creates a new bid repository instance
func NewBidRepository(db *database.DB) bid.BidRepository {
	return &bidRepositoryImpl{db: db}
}

const bidColumns = `
	id, tender_id, bidder_id, bid_amount::text, remarks, created_at, updated_at
`

func scanBid(row pgx.Row) (bid.Bid, error) {
	var b bid.Bid
	var amount string

	err := row.Scan(
		&b.ID,
		&b.TenderID,
		&b.BidderID,
		&amount,
		&b.Remarks,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return bid.Bid{}, err
	}

	if b.BidAmount, err = decimal.NewFromString(amount); err != nil {
		return bid.Bid{}, fmt.Errorf("invalid bid amount %q: %w", amount, err)
	}

	return b, nil
}

// Create implements bid.BidRepository. The unique index on
// (tender_id, bidder_id) closes the race between concurrent create-bid
// calls from the same bidder.
func (r *bidRepositoryImpl) Create(ctx context.Context, b bid.Bid) (bid.Bid, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bids (tender_id, bidder_id, bid_amount, remarks)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING ` + bidColumns

	amount := b.BidAmount.String()
	created, err := scanBid(q.QueryRow(ctx, query, b.TenderID, b.BidderID, amount, b.Remarks))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return bid.Bid{}, bid.ErrDuplicateBid
		}
		return bid.Bid{}, fmt.Errorf("failed to create bid: %w", err)
	}

	return created, nil
}

// GetByID implements bid.BidRepository.
func (r *bidRepositoryImpl) GetByID(ctx context.Context, id string) (bid.Bid, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	found, err := scanBid(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bid.Bid{}, bid.ErrBidNotFound
		}
		return bid.Bid{}, fmt.Errorf("failed to get bid by id: %w", err)
	}

	return found, nil
}

// GetByTenderAndBidder implements bid.BidRepository.
func (r *bidRepositoryImpl) GetByTenderAndBidder(ctx context.Context, tenderID, bidderID string) (bid.Bid, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bidColumns + ` FROM bids WHERE tender_id = $1 AND bidder_id = $2`

	found, err := scanBid(q.QueryRow(ctx, query, tenderID, bidderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bid.Bid{}, bid.ErrBidNotFound
		}
		return bid.Bid{}, fmt.Errorf("failed to get bid by tender and bidder: %w", err)
	}

	return found, nil
}

// Update implements bid.BidRepository.
func (r *bidRepositoryImpl) Update(ctx context.Context, b bid.Bid) (bid.Bid, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bids
		SET bid_amount = $1::numeric, remarks = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + bidColumns

	amount := b.BidAmount.String()
	updated, err := scanBid(q.QueryRow(ctx, query, amount, b.Remarks, b.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bid.Bid{}, bid.ErrBidNotFound
		}
		return bid.Bid{}, fmt.Errorf("failed to update bid: %w", err)
	}

	return updated, nil
}

// ListByTenderWithBidders implements bid.BidRepository.
func (r *bidRepositoryImpl) ListByTenderWithBidders(ctx context.Context, tenderID string) ([]bid.WithBidder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.tender_id, b.bidder_id, b.bid_amount::text, b.remarks,
			   b.created_at, b.updated_at,
			   u.email, u.role
		FROM bids b
		JOIN users u ON u.id = b.bidder_id
		WHERE b.tender_id = $1
		ORDER BY b.created_at ASC
	`

	rows, err := q.Query(ctx, query, tenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids with bidders: %w", err)
	}
	defer rows.Close()

	var bids []bid.WithBidder
	for rows.Next() {
		var wb bid.WithBidder
		var amount string
		if err := rows.Scan(
			&wb.ID,
			&wb.TenderID,
			&wb.BidderID,
			&amount,
			&wb.Remarks,
			&wb.CreatedAt,
			&wb.UpdatedAt,
			&wb.BidderEmail,
			&wb.BidderRole,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bid row: %w", err)
		}
		if wb.BidAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid bid amount %q: %w", amount, err)
		}
		bids = append(bids, wb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bid rows: %w", err)
	}

	return bids, nil
}

// ListByTenderAndBidderIn implements bid.BidRepository.
func (r *bidRepositoryImpl) ListByTenderAndBidderIn(ctx context.Context, tenderIDs []string, bidderID string) ([]bid.Bid, error) {
	if len(tenderIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bidColumns + ` FROM bids WHERE tender_id = ANY($1) AND bidder_id = $2`

	rows, err := q.Query(ctx, query, tenderIDs, bidderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids by tender and bidder: %w", err)
	}
	defer rows.Close()

	var bids []bid.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid row: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bid rows: %w", err)
	}

	return bids, nil
}

// CountByTenderIn implements bid.BidRepository.
func (r *bidRepositoryImpl) CountByTenderIn(ctx context.Context, tenderIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(tenderIDs))
	if len(tenderIDs) == 0 {
		return counts, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tender_id, COUNT(*)
		FROM bids
		WHERE tender_id = ANY($1)
		GROUP BY tender_id
	`

	rows, err := q.Query(ctx, query, tenderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tenderID string
		var count int
		if err := rows.Scan(&tenderID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan bid count row: %w", err)
		}
		counts[tenderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bid count rows: %w", err)
	}

	return counts, nil
}

// ListBidderEmails implements bid.BidRepository.
func (r *bidRepositoryImpl) ListBidderEmails(ctx context.Context, tenderID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.email
		FROM bids b
		JOIN users u ON u.id = b.bidder_id
		WHERE b.tender_id = $1
	`

	rows, err := q.Query(ctx, query, tenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bidder emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan bidder email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bidder emails: %w", err)
	}

	return emails, nil
}
