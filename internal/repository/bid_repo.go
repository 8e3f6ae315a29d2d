package repository

import (
	"context"
	"errors"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ErrBidNotFound возвращается, когда ставка с указанным id отсутствует.
var ErrBidNotFound = errors.New("bid not found")

// BidRepository - интерфейс для работы со ставками поставщиков.
type BidRepository interface {
	GetBid(ctx context.Context, bidID string) (*models.Bid, error)
	GetQuoteBids(ctx context.Context, quoteID string, limit, offset int) ([]models.Bid, error)
	HasQuoteBids(ctx context.Context, quoteID string) (bool, error)
	MarkAwarded(ctx context.Context, quoteID, winnerBidID string) error
	ResetAwardStatuses(ctx context.Context, quoteID string) error
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// GetBid возвращает ставку по идентификатору.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidID string) (*models.Bid, error) {
	query := `SELECT id, quote_id, supplier_id, status, created_at FROM supplier_bids WHERE id = $1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBidNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// GetQuoteBids возвращает страницу ставок по заявке.
func (r *PostgresBidRepository) GetQuoteBids(ctx context.Context, quoteID string, limit, offset int) ([]models.Bid, error) {
	query := `SELECT id, quote_id, supplier_id, status, created_at
	          FROM supplier_bids WHERE quote_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, quoteID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// scanBid читает строку supplier_bids, отклоняя неизвестный статус.
func scanBid(row rowScanner) (models.Bid, error) {
	var (
		bid    models.Bid
		status string
	)
	if err := row.Scan(&bid.ID, &bid.QuoteID, &bid.SupplierID, &status, &bid.CreatedAt); err != nil {
		return models.Bid{}, err
	}
	normalized, err := models.NormalizeBidStatus(status)
	if err != nil {
		return models.Bid{}, err
	}
	bid.Status = normalized
	return bid, nil
}

// HasQuoteBids проверяет, существуют ли ставки по заявке.
func (r *PostgresBidRepository) HasQuoteBids(ctx context.Context, quoteID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM supplier_bids WHERE quote_id = $1)`
	err := r.DB.QueryRow(ctx, query, quoteID).Scan(&exists)
	return exists, err
}

// MarkAwarded помечает победившую ставку как won, а остальные активные
// ставки по заявке как lost. Отозванные и отклонённые ставки не трогаются.
func (r *PostgresBidRepository) MarkAwarded(ctx context.Context, quoteID, winnerBidID string) error {
	winnerQuery := `UPDATE supplier_bids SET status = $1 WHERE id = $2 AND quote_id = $3`
	if _, err := r.DB.Exec(ctx, winnerQuery, models.WonBid, winnerBidID, quoteID); err != nil {
		return err
	}

	losersQuery := `UPDATE supplier_bids SET status = $1 WHERE quote_id = $2 AND id <> $3 AND status = ANY($4)`
	activeStatuses := []string{string(models.SubmittedBid), string(models.RevisedBid)}
	_, err := r.DB.Exec(ctx, losersQuery, models.LostBid, quoteID, winnerBidID, pq.Array(activeStatuses))
	return err
}

// ResetAwardStatuses возвращает ставки, затронутые награждением, в submitted.
// declined и withdrawn остаются как есть: это решения самого поставщика.
func (r *PostgresBidRepository) ResetAwardStatuses(ctx context.Context, quoteID string) error {
	statuses := make([]string, 0, len(models.AwardResetBidStatuses))
	for _, s := range models.AwardResetBidStatuses {
		statuses = append(statuses, string(s))
	}
	query := `UPDATE supplier_bids SET status = $1 WHERE quote_id = $2 AND status = ANY($3)`
	_, err := r.DB.Exec(ctx, query, models.SubmittedBid, quoteID, pq.Array(statuses))
	return err
}
