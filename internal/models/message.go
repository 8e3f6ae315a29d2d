package models

type SenderRole string // Сторона переписки по заявке

const (
	CustomerSender SenderRole = "customer" // Сообщение от заказчика
	SupplierSender SenderRole = "supplier" // Сообщение от поставщика
)

// ValidSenderRole проверяет, что отправитель входит в закрытый список сторон.
func ValidSenderRole(role SenderRole) bool {
	switch role {
	case CustomerSender, SupplierSender:
		return true
	default:
		return false
	}
}

// Message представляет сообщение в переписке по заявке.
// CreatedAt хранится как строка ISO-8601, поэтому отметки времени
// сравниваются лексикографически.
type Message struct {
	ID         string     `json:"id"`
	QuoteID    string     `json:"quoteId"`
	SenderRole SenderRole `json:"senderRole"`
	CreatedAt  string     `json:"createdAt"`
	Body       string     `json:"body"`
}
