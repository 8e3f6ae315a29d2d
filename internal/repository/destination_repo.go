package repository

import (
	"context"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DestinationRepository - интерфейс для работы с рассылками заявок.
type DestinationRepository interface {
	GetQuoteDestinations(ctx context.Context, quoteID string) ([]models.Destination, error)
}

// PostgresDestinationRepository - реализация DestinationRepository для базы данных.
type PostgresDestinationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresDestinationRepository создает новый экземпляр PostgresDestinationRepository.
func NewPostgresDestinationRepository(db *pgxpool.Pool) *PostgresDestinationRepository {
	return &PostgresDestinationRepository{DB: db}
}

// GetQuoteDestinations возвращает рассылки по заявке.
func (r *PostgresDestinationRepository) GetQuoteDestinations(ctx context.Context, quoteID string) ([]models.Destination, error) {
	query := `SELECT id, rfq_id, status, last_status_at FROM rfq_destinations WHERE rfq_id = $1 ORDER BY last_status_at`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		dest, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, dest)
	}
	return destinations, rows.Err()
}

// scanDestination читает строку rfq_destinations, отклоняя неизвестный статус.
func scanDestination(row rowScanner) (models.Destination, error) {
	var (
		dest   models.Destination
		status string
	)
	if err := row.Scan(&dest.ID, &dest.RfqID, &status, &dest.LastStatusAt); err != nil {
		return models.Destination{}, err
	}
	normalized, err := models.NormalizeDestinationStatus(status)
	if err != nil {
		return models.Destination{}, err
	}
	dest.Status = normalized
	return dest, nil
}
