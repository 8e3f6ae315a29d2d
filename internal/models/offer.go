package models

import (
	"fmt"
	"strings"
	"time"
)

type OfferStatus string // Статус предложения поставщика

const (
	ReceivedOffer  OfferStatus = "received"  // Предложение получено
	QuotedOffer    OfferStatus = "quoted"    // Предложение выставлено заказчику
	WithdrawnOffer OfferStatus = "withdrawn" // Предложение отозвано поставщиком
)

// NormalizeOfferStatus приводит строку статуса предложения к каноническому значению.
func NormalizeOfferStatus(raw string) (OfferStatus, error) {
	s := OfferStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case ReceivedOffer, QuotedOffer, WithdrawnOffer:
		return s, nil
	}
	return "", fmt.Errorf("unknown offer status %q", raw)
}

// Offer представляет модель предложения по заявке.
// Ценовые поля приходят из внешних источников и могут быть числом,
// строкой или отсутствовать; разбор выполняется на стороне ранжирования.
type Offer struct {
	ID               string      `json:"id"`
	RfqID            string      `json:"rfqId"`
	ProviderID       *string     `json:"providerId,omitempty"`
	ProviderName     *string     `json:"providerName,omitempty"`
	Currency         string      `json:"currency"`
	TotalPrice       interface{} `json:"totalPrice,omitempty"`
	UnitPrice        interface{} `json:"unitPrice,omitempty"`
	ToolingPrice     interface{} `json:"toolingPrice,omitempty"`
	ShippingPrice    interface{} `json:"shippingPrice,omitempty"`
	LeadTimeDaysMin  *float64    `json:"leadTimeDaysMin,omitempty"`
	LeadTimeDaysMax  *float64    `json:"leadTimeDaysMax,omitempty"`
	ConfidenceScore  *float64    `json:"confidenceScore,omitempty"`
	QualityRiskFlags []string    `json:"qualityRiskFlags,omitempty"`
	Status           OfferStatus `json:"status"`
	ReceivedAt       *time.Time  `json:"receivedAt,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OfferRequest представляет структуру запроса для создания или ревизии предложения.
// Повторная отправка тем же поставщиком по той же заявке обновляет
// существующую запись (upsert по паре rfq_id + provider_id).
type OfferRequest struct {
	ProviderID       string      `json:"providerId"`
	ProviderName     string      `json:"providerName"`
	Currency         string      `json:"currency"`
	TotalPrice       interface{} `json:"totalPrice"`
	UnitPrice        interface{} `json:"unitPrice"`
	ToolingPrice     interface{} `json:"toolingPrice"`
	ShippingPrice    interface{} `json:"shippingPrice"`
	LeadTimeDaysMin  *float64    `json:"leadTimeDaysMin"`
	LeadTimeDaysMax  *float64    `json:"leadTimeDaysMax"`
	ConfidenceScore  *float64    `json:"confidenceScore"`
	QualityRiskFlags []string    `json:"qualityRiskFlags"`
}
