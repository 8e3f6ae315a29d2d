package repository

import (
	"context"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository - интерфейс для чтения переписки по заявке.
type MessageRepository interface {
	GetQuoteMessages(ctx context.Context, quoteID string) ([]models.Message, error)
}

// PostgresMessageRepository - реализация MessageRepository для базы данных.
type PostgresMessageRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMessageRepository создает новый экземпляр PostgresMessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// GetQuoteMessages возвращает сообщения переписки по заявке.
// Отметка времени хранится строкой ISO-8601 и сравнивается лексикографически.
func (r *PostgresMessageRepository) GetQuoteMessages(ctx context.Context, quoteID string) ([]models.Message, error) {
	query := `SELECT id, quote_id, sender_role, created_at, body FROM quote_messages WHERE quote_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.QuoteID, &msg.SenderRole, &msg.CreatedAt, &msg.Body); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
