package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrQuoteNotFound возвращается, когда заявка с указанным id отсутствует.
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteRepository - интерфейс для работы с заявками.
type QuoteRepository interface {
	GetQuote(ctx context.Context, quoteID string) (*models.Quote, error)
	QuoteExists(ctx context.Context, quoteID string) (bool, error)
	SetAward(ctx context.Context, quoteID string, award models.AwardFields) (bool, error)
	ClearAward(ctx context.Context, quoteID string, nextStatus *models.QuoteStatus) (bool, error)
}

// PostgresQuoteRepository - реализация QuoteRepository для базы данных.
type PostgresQuoteRepository struct {
	DB   *pgxpool.Pool
	Caps models.Capabilities
}

// NewPostgresQuoteRepository создает новый экземпляр PostgresQuoteRepository.
func NewPostgresQuoteRepository(db *pgxpool.Pool, caps models.Capabilities) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{DB: db, Caps: caps}
}

// GetQuote возвращает заявку вместе с полями награждения.
func (r *PostgresQuoteRepository) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	var quote models.Quote
	query := `SELECT id, status, awarded_bid_id, awarded_supplier_id, awarded_provider_id, awarded_offer_id,
	                 awarded_at, awarded_by_user_id, awarded_by_role, created_at
	          FROM quotes WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, quoteID).Scan(
		&quote.ID,
		&quote.Status,
		&quote.AwardedBidID,
		&quote.AwardedSupplierID,
		&quote.AwardedProviderID,
		&quote.AwardedOfferID,
		&quote.AwardedAt,
		&quote.AwardedByUserID,
		&quote.AwardedByRole,
		&quote.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// QuoteExists проверяет существование заявки без чтения всей строки.
func (r *PostgresQuoteRepository) QuoteExists(ctx context.Context, quoteID string) (bool, error) {
	return utils.CheckQuoteExists(ctx, r.DB, quoteID)
}

// SetAward фиксирует победителя одним условным UPDATE. Запись проходит
// только если заявка ещё не награждена, поэтому частично заполненного
// состояния и гонки двух награждений не бывает. Возвращает false, если
// условие не выполнилось.
func (r *PostgresQuoteRepository) SetAward(ctx context.Context, quoteID string, award models.AwardFields) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2,
		    awarded_bid_id = $3,
		    awarded_supplier_id = $4,
		    awarded_at = now(),
		    awarded_by_user_id = $5,
		    awarded_by_role = $6`
	args := []interface{}{quoteID, models.WonQuote, award.BidID, award.SupplierID, award.ByUserID, award.ByRole}
	if r.Caps.HasProviderAwardFields {
		query += `,
		    awarded_provider_id = $7,
		    awarded_offer_id = $8`
		args = append(args, award.ProviderID, award.OfferID)
	}
	query += `
		WHERE id = $1 AND awarded_bid_id IS NULL AND awarded_at IS NULL`

	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ClearAward снимает награждение одним условным UPDATE. Условие
// "поля награждения непусты" заменяет чтение-потом-запись: при гонке
// двух отмен вторая просто не заденет ни одной строки. nextStatus
// передаётся только когда статус заявки нужно откатить с won.
func (r *PostgresQuoteRepository) ClearAward(ctx context.Context, quoteID string, nextStatus *models.QuoteStatus) (bool, error) {
	sets := []string{
		"awarded_bid_id = NULL",
		"awarded_supplier_id = NULL",
		"awarded_at = NULL",
		"awarded_by_user_id = NULL",
		"awarded_by_role = NULL",
	}
	guards := []string{
		"awarded_bid_id IS NOT NULL",
		"awarded_supplier_id IS NOT NULL",
		"awarded_at IS NOT NULL",
	}
	if r.Caps.HasProviderAwardFields {
		sets = append(sets, "awarded_provider_id = NULL", "awarded_offer_id = NULL")
		guards = append(guards, "awarded_provider_id IS NOT NULL", "awarded_offer_id IS NOT NULL")
	}

	args := []interface{}{quoteID}
	if nextStatus != nil {
		sets = append(sets, "status = $2")
		args = append(args, *nextStatus)
	}

	query := fmt.Sprintf(
		"UPDATE quotes SET %s WHERE id = $1 AND (%s)",
		strings.Join(sets, ", "),
		strings.Join(guards, " OR "),
	)
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
