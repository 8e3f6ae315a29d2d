package events

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Типы событий ленты заявки.
const (
	AwardChangedEvent = "award_changed" // Победитель выбран или решение отменено
)

// TimelineSink принимает события ленты заявки. Доставка best-effort:
// реализация не имеет права блокировать или валить основную операцию.
type TimelineSink interface {
	QuoteAwardChanged(ctx context.Context, quoteID, detail, actor string)
}

// PostgresTimelineSink пишет события ленты в таблицу timeline_events.
type PostgresTimelineSink struct {
	DB     *pgxpool.Pool
	Logger *log.Logger
}

// NewPostgresTimelineSink создает новый экземпляр PostgresTimelineSink.
func NewPostgresTimelineSink(db *pgxpool.Pool, logger *log.Logger) *PostgresTimelineSink {
	return &PostgresTimelineSink{DB: db, Logger: logger}
}

// QuoteAwardChanged записывает событие об изменении награждения.
// Ошибка записи логируется и не возвращается.
func (s *PostgresTimelineSink) QuoteAwardChanged(ctx context.Context, quoteID, detail, actor string) {
	query := `INSERT INTO timeline_events (id, quote_id, event_type, detail, actor, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.DB.Exec(ctx, query, uuid.New().String(), quoteID, AwardChangedEvent, detail, actor, time.Now().UTC())
	if err != nil {
		s.Logger.Printf("timeline event for quote %s dropped: %v", quoteID, err)
	}
}

// NoopTimelineSink - заглушка для инсталляций без таблицы событий.
type NoopTimelineSink struct{}

func (NoopTimelineSink) QuoteAwardChanged(ctx context.Context, quoteID, detail, actor string) {}
