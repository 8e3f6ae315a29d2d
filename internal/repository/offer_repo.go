package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/ranking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OfferRepository - интерфейс для работы с предложениями поставщиков.
type OfferRepository interface {
	GetQuoteOffers(ctx context.Context, quoteID string) ([]models.Offer, error)
	UpsertOffer(ctx context.Context, quoteID string, offerReq models.OfferRequest) (*models.Offer, error)
	WithdrawOffer(ctx context.Context, offerID string) error
}

// PostgresOfferRepository - реализация OfferRepository для базы данных.
type PostgresOfferRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresOfferRepository создает новый экземпляр PostgresOfferRepository.
func NewPostgresOfferRepository(db *pgxpool.Pool) *PostgresOfferRepository {
	return &PostgresOfferRepository{DB: db}
}

// GetQuoteOffers возвращает все предложения по заявке, включая отозванные.
// Отбор для ранжирования и счётчиков делает вызывающая сторона.
func (r *PostgresOfferRepository) GetQuoteOffers(ctx context.Context, quoteID string) ([]models.Offer, error) {
	query := `SELECT id, rfq_id, provider_id, provider_name, currency, total_price, unit_price,
	                 tooling_price, shipping_price, lead_time_days_min, lead_time_days_max,
	                 confidence_score, quality_risk_flags, status, received_at, created_at
	          FROM rfq_offers WHERE rfq_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// UpsertOffer создает предложение или обновляет существующее по ключу
// (rfq_id, provider_id): повторная отправка поставщиком трактуется как
// ревизия, записи никогда не удаляются.
func (r *PostgresOfferRepository) UpsertOffer(ctx context.Context, quoteID string, offerReq models.OfferRequest) (*models.Offer, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO rfq_offers (id, rfq_id, provider_id, provider_name, currency, total_price, unit_price,
		                        tooling_price, shipping_price, lead_time_days_min, lead_time_days_max,
		                        confidence_score, quality_risk_flags, status, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (rfq_id, provider_id) DO UPDATE SET
			provider_name = EXCLUDED.provider_name,
			currency = EXCLUDED.currency,
			total_price = EXCLUDED.total_price,
			unit_price = EXCLUDED.unit_price,
			tooling_price = EXCLUDED.tooling_price,
			shipping_price = EXCLUDED.shipping_price,
			lead_time_days_min = EXCLUDED.lead_time_days_min,
			lead_time_days_max = EXCLUDED.lead_time_days_max,
			confidence_score = EXCLUDED.confidence_score,
			quality_risk_flags = EXCLUDED.quality_risk_flags,
			status = EXCLUDED.status,
			received_at = EXCLUDED.received_at
		RETURNING id, rfq_id, provider_id, provider_name, currency, total_price, unit_price,
		          tooling_price, shipping_price, lead_time_days_min, lead_time_days_max,
		          confidence_score, quality_risk_flags, status, received_at, created_at`

	row := r.DB.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		quoteID,
		offerReq.ProviderID,
		nullableText(offerReq.ProviderName),
		offerReq.Currency,
		numericText(offerReq.TotalPrice),
		numericText(offerReq.UnitPrice),
		numericText(offerReq.ToolingPrice),
		numericText(offerReq.ShippingPrice),
		offerReq.LeadTimeDaysMin,
		offerReq.LeadTimeDaysMax,
		offerReq.ConfidenceScore,
		offerReq.QualityRiskFlags,
		models.ReceivedOffer,
		now,
	)
	offer, err := scanOffer(row)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// WithdrawOffer помечает предложение отозванным. Запись остаётся в таблице.
func (r *PostgresOfferRepository) WithdrawOffer(ctx context.Context, offerID string) error {
	query := `UPDATE rfq_offers SET status = $1 WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, models.WithdrawnOffer, offerID)
	return err
}

// rowScanner покрывает pgx.Row и pgx.Rows для общего сканирования предложения.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOffer читает строку rfq_offers. Ценовые колонки хранятся текстом:
// источники присылают и числа, и строки, разбор выполняет ранжирование.
func scanOffer(row rowScanner) (models.Offer, error) {
	var (
		offer         models.Offer
		totalPrice    *string
		unitPrice     *string
		toolingPrice  *string
		shippingPrice *string
		status        string
	)
	err := row.Scan(
		&offer.ID,
		&offer.RfqID,
		&offer.ProviderID,
		&offer.ProviderName,
		&offer.Currency,
		&totalPrice,
		&unitPrice,
		&toolingPrice,
		&shippingPrice,
		&offer.LeadTimeDaysMin,
		&offer.LeadTimeDaysMax,
		&offer.ConfidenceScore,
		&offer.QualityRiskFlags,
		&status,
		&offer.ReceivedAt,
		&offer.CreatedAt,
	)
	if err != nil {
		return models.Offer{}, err
	}
	offer.Status, err = models.NormalizeOfferStatus(status)
	if err != nil {
		return models.Offer{}, err
	}
	if totalPrice != nil {
		offer.TotalPrice = *totalPrice
	}
	if unitPrice != nil {
		offer.UnitPrice = *unitPrice
	}
	if toolingPrice != nil {
		offer.ToolingPrice = *toolingPrice
	}
	if shippingPrice != nil {
		offer.ShippingPrice = *shippingPrice
	}
	return offer, nil
}

// numericText приводит число-или-строку к тексту для хранения.
// Неразбираемые значения сохраняются как NULL.
func numericText(value interface{}) *string {
	parsed := ranking.ParseNumeric(value)
	if parsed == nil {
		return nil
	}
	text := strconv.FormatFloat(*parsed, 'f', -1, 64)
	return &text
}

// nullableText превращает пустую строку в NULL.
func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
