package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

type MySQLAuctionRepository struct {
	db *sql.DB
}

func NewMySQLAuctionRepository(db *sql.DB) *MySQLAuctionRepository {
	return &MySQLAuctionRepository{db: db}
}

func (r *MySQLAuctionRepository) CreateAuction(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, created_by_id, title, description, image_url,
                              starting_price, current_price, buy_now_price, ends_at,
                              is_active, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.ID, auction.CreatedByID, auction.Title, auction.Description,
		auction.ImageURL, auction.StartingPrice, auction.CurrentPrice,
		auction.BuyNowPrice, auction.EndsAt, auction.IsActive, auction.CreatedAt)
	return err
}

func (r *MySQLAuctionRepository) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	query := `
        SELECT id, created_by_id, title, description, image_url, starting_price,
               current_price, buy_now_price, ends_at, is_active, created_at
        FROM auctions WHERE id = ?
    `
	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return auction, err
}

func (r *MySQLAuctionRepository) ActiveAuctions(ctx context.Context) ([]*domain.Auction, error) {
	query := `
        SELECT id, created_by_id, title, description, image_url, starting_price,
               current_price, buy_now_price, ends_at, is_active, created_at
        FROM auctions
        WHERE is_active = TRUE AND ends_at > ?
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, time.Now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		auction, err := scanAuctionRows(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, rows.Err()
}

// PlaceBid appends the bid row and updates the auction's current price as
// one transaction. The row lock taken by FOR UPDATE serializes concurrent
// bids on the same auction, so the validation below cannot race a stale
// current price.
func (r *MySQLAuctionRepository) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*domain.AuctionBid, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var currentPrice int64
	var isActive bool
	var endsAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT current_price, is_active, ends_at FROM auctions WHERE id = ? FOR UPDATE`,
		auctionID).Scan(&currentPrice, &isActive, &endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isActive || time.Now().After(endsAt) {
		return nil, domain.ErrInactiveAuction
	}
	if amount <= currentPrice {
		return nil, domain.ErrLowBid
	}

	bid := &domain.AuctionBid{
		ID:        utils.NewID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO auction_bids (id, auction_id, bidder_id, amount, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		bid.ID, bid.AuctionID, bid.BidderID, bid.Amount, bid.CreatedAt); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE auctions SET current_price = ? WHERE id = ?`,
		amount, auctionID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return bid, nil
}

func (r *MySQLAuctionRepository) BidHistory(ctx context.Context, auctionID string) ([]*domain.AuctionBid, error) {
	query := `
        SELECT id, auction_id, bidder_id, amount, created_at
        FROM auction_bids
        WHERE auction_id = ?
        ORDER BY created_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.AuctionBid
	for rows.Next() {
		var bid domain.AuctionBid
		if err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.BidderID,
			&bid.Amount, &bid.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, &bid)
	}
	return bids, rows.Err()
}

func (r *MySQLAuctionRepository) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET is_active = FALSE WHERE is_active = TRUE AND ends_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuction(row *sql.Row) (*domain.Auction, error) {
	return scanAuctionRows(row)
}

func scanAuctionRows(row rowScanner) (*domain.Auction, error) {
	var a domain.Auction
	var description, imageURL sql.NullString
	var buyNowPrice sql.NullInt64

	err := row.Scan(&a.ID, &a.CreatedByID, &a.Title, &description, &imageURL,
		&a.StartingPrice, &a.CurrentPrice, &buyNowPrice, &a.EndsAt,
		&a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Description = description.String
	a.ImageURL = imageURL.String
	if buyNowPrice.Valid {
		a.BuyNowPrice = &buyNowPrice.Int64
	}
	return &a, nil
}
