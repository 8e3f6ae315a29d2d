package models

// Capabilities описывает необязательные части схемы конкретной инсталляции.
// Набор вычисляется один раз при деплое и передаётся в сервисы через
// конфигурацию; движок никогда не проверяет живую схему сам.
type Capabilities struct {
	HasProviderAwardFields bool // Колонки awarded_provider_id / awarded_offer_id присутствуют
	HasTimelineEvents      bool // Таблица timeline_events присутствует
	HasQuoteMessages       bool // Таблица quote_messages присутствует
}
