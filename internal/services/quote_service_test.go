package services

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/senyabanana/rfq-service/internal/actions"
	"github.com/senyabanana/rfq-service/internal/models"
)

type fakeOfferRepo struct {
	offers   []models.Offer
	getCalls int

	upserted  *models.OfferRequest
	withdrawn string
}

func (f *fakeOfferRepo) GetQuoteOffers(ctx context.Context, quoteID string) ([]models.Offer, error) {
	f.getCalls++
	return f.offers, nil
}

func (f *fakeOfferRepo) UpsertOffer(ctx context.Context, quoteID string, offerReq models.OfferRequest) (*models.Offer, error) {
	f.upserted = &offerReq
	return &models.Offer{ID: "o-new", RfqID: quoteID, Currency: offerReq.Currency, Status: models.ReceivedOffer}, nil
}

func (f *fakeOfferRepo) WithdrawOffer(ctx context.Context, offerID string) error {
	f.withdrawn = offerID
	return nil
}

type fakeDestinationRepo struct {
	destinations []models.Destination
}

func (f *fakeDestinationRepo) GetQuoteDestinations(ctx context.Context, quoteID string) ([]models.Destination, error) {
	return f.destinations, nil
}

type fakeMessageRepo struct {
	messages []models.Message
	getCalls int
}

func (f *fakeMessageRepo) GetQuoteMessages(ctx context.Context, quoteID string) ([]models.Message, error) {
	f.getCalls++
	return f.messages, nil
}

// memCache - кэш в памяти для проверки чтения и записи представлений.
type memCache struct {
	store map[string][]byte
}

func newMemCache() *memCache { return &memCache{store: make(map[string][]byte)} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, ok := c.store[key]
	return payload, ok, nil
}

func (c *memCache) Put(ctx context.Context, key string, payload []byte) error {
	c.store[key] = payload
	return nil
}

func (c *memCache) InvalidateQuote(ctx context.Context, quoteID string) error {
	c.store = make(map[string][]byte)
	return nil
}

func newViewService(offers *fakeOfferRepo, messages *fakeMessageRepo, viewCache *memCache, caps models.Capabilities) *QuoteViewService {
	service := NewQuoteViewService(
		&fakeQuoteRepo{quote: &models.Quote{ID: quoteID, Status: models.QuotedQuote}},
		offers,
		&fakeBidRepo{},
		&fakeDestinationRepo{},
		messages,
		viewCache,
		caps,
		24,
		log.New(io.Discard, "", 0),
	)
	service.Now = func() time.Time { return time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC) }
	return service
}

func TestGetOffersView(t *testing.T) {
	name := "Alpha"
	lead := 10.0
	offers := &fakeOfferRepo{offers: []models.Offer{
		{ID: "o-1", RfqID: quoteID, ProviderName: &name, TotalPrice: 100.0, LeadTimeDaysMin: &lead, Status: models.ReceivedOffer},
		{ID: "o-2", RfqID: quoteID, TotalPrice: "250.00", Status: models.ReceivedOffer},
	}}
	viewCache := newMemCache()
	service := newViewService(offers, &fakeMessageRepo{}, viewCache, models.Capabilities{})

	view, err := service.GetOffersView(context.Background(), quoteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Offers) != 2 {
		t.Fatalf("got %d rows, want 2", len(view.Offers))
	}
	if view.Offers[0].Offer.ID != "o-1" {
		t.Errorf("first row = %s, want o-1 (cheaper and faster)", view.Offers[0].Offer.ID)
	}
	if view.Offers[0].Completeness.Score != 85 {
		t.Errorf("completeness = %d, want 85 (total price + lead time)", view.Offers[0].Completeness.Score)
	}
	if len(viewCache.store) != 1 {
		t.Errorf("view not cached: %d entries", len(viewCache.store))
	}

	// Повторный запрос обслуживается из кэша без похода в репозиторий.
	if _, err := service.GetOffersView(context.Background(), quoteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offers.getCalls != 1 {
		t.Errorf("offers fetched %d times, want 1", offers.getCalls)
	}
}

func TestGetOffersViewInvalidID(t *testing.T) {
	service := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})

	_, err := service.GetOffersView(context.Background(), "42")
	expectErrorResponse(t, err, http.StatusBadRequest, "invalid quote id")
}

func TestGetQuoteBids(t *testing.T) {
	bids := &fakeBidRepo{bids: []models.Bid{
		{ID: "b-1", QuoteID: quoteID, SupplierID: "sup-1", Status: models.SubmittedBid},
	}}
	service := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})
	service.Bids = bids

	got, err := service.GetQuoteBids(context.Background(), quoteID, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b-1" {
		t.Errorf("bids = %+v, want [b-1]", got)
	}
	// Параметры страницы доходят до репозитория как есть.
	if bids.limit != 10 || bids.offset != 5 {
		t.Errorf("page = %d/%d, want 10/5", bids.limit, bids.offset)
	}

	empty := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})
	got, err = empty.GetQuoteBids(context.Background(), quoteID, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("bids = %v, want empty non-nil slice", got)
	}
}

func TestGetReplyObligationWithoutMessagesTable(t *testing.T) {
	messages := &fakeMessageRepo{messages: []models.Message{
		{QuoteID: quoteID, SenderRole: models.CustomerSender, CreatedAt: "2025-03-01T10:00:00Z"},
	}}
	service := newViewService(&fakeOfferRepo{}, messages, newMemCache(), models.Capabilities{HasQuoteMessages: false})

	obligation, err := service.GetReplyObligation(context.Background(), quoteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obligation.SupplierOwesReply {
		t.Error("obligation computed despite disabled messages table")
	}
	if messages.getCalls != 0 {
		t.Errorf("messages fetched %d times with disabled table", messages.getCalls)
	}
}

func TestGetReplyObligation(t *testing.T) {
	messages := &fakeMessageRepo{messages: []models.Message{
		{QuoteID: quoteID, SenderRole: models.CustomerSender, CreatedAt: "2025-03-01T10:00:00Z"},
	}}
	service := newViewService(&fakeOfferRepo{}, messages, newMemCache(), models.Capabilities{HasQuoteMessages: true})

	obligation, err := service.GetReplyObligation(context.Background(), quoteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !obligation.SupplierOwesReply || !obligation.SupplierReplyOverdue {
		t.Errorf("obligation = %+v, want supplier owes overdue reply", obligation)
	}
}

func TestGetPrimaryActionInvalidRole(t *testing.T) {
	service := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})

	_, err := service.GetPrimaryAction(context.Background(), quoteID, "robot", actions.Hints{})
	expectErrorResponse(t, err, http.StatusBadRequest, "invalid viewer role")
}

func TestGetPrimaryAction(t *testing.T) {
	service := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})

	action, err := service.GetPrimaryAction(context.Background(), quoteID, models.CustomerRole, actions.Hints{CanAward: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Label != "Review bids" || action.Tone != actions.EmphasisTone {
		t.Errorf("action = %+v, want emphasised Review bids", action)
	}
}

func TestSubmitOfferValidation(t *testing.T) {
	service := newViewService(&fakeOfferRepo{}, &fakeMessageRepo{}, newMemCache(), models.Capabilities{})

	_, err := service.SubmitOffer(context.Background(), quoteID, models.OfferRequest{Currency: "USD"})
	expectErrorResponse(t, err, http.StatusBadRequest, "providerId is required")

	_, err = service.SubmitOffer(context.Background(), quoteID, models.OfferRequest{ProviderID: "p-1"})
	expectErrorResponse(t, err, http.StatusBadRequest, "currency is required")
}

func TestWithdrawOffer(t *testing.T) {
	offers := &fakeOfferRepo{}
	viewCache := newMemCache()
	viewCache.store["rfq:view:offers:"+quoteID] = []byte(`{}`)
	service := newViewService(offers, &fakeMessageRepo{}, viewCache, models.Capabilities{})

	offerID := "0f8fad5b-d9cb-469f-a165-70867728950e"
	if err := service.WithdrawOffer(context.Background(), quoteID, offerID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offers.withdrawn != offerID {
		t.Errorf("withdrawn offer = %q, want %q", offers.withdrawn, offerID)
	}
	if len(viewCache.store) != 0 {
		t.Errorf("stale views left in cache: %d entries", len(viewCache.store))
	}

	err := service.WithdrawOffer(context.Background(), quoteID, "not-a-uuid")
	expectErrorResponse(t, err, http.StatusBadRequest, "invalid offer id")
}

func TestSubmitOfferInvalidatesCache(t *testing.T) {
	offers := &fakeOfferRepo{}
	viewCache := newMemCache()
	viewCache.store["rfq:view:offers:"+quoteID] = []byte(`{}`)
	service := newViewService(offers, &fakeMessageRepo{}, viewCache, models.Capabilities{})

	offer, err := service.SubmitOffer(context.Background(), quoteID, models.OfferRequest{ProviderID: "p-1", Currency: "USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offer.ID == "" {
		t.Error("offer without id returned")
	}
	if offers.upserted == nil || offers.upserted.ProviderID != "p-1" {
		t.Errorf("upserted request = %+v", offers.upserted)
	}
	if len(viewCache.store) != 0 {
		t.Errorf("stale views left in cache: %d entries", len(viewCache.store))
	}
}
