package offer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"offersense/database"
	"offersense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSource struct {
	fetch func(ctx context.Context, card CardContext) ([]Offer, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchOffers(ctx context.Context, card CardContext) ([]Offer, error) {
	return f.fetch(ctx, card)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func testCards() []CardContext {
	return []CardContext{
		{CardID: "card-1", Network: models.NetworkVisa, BankName: "TESTBANK", LastFourDigits: "4242"},
		{CardID: "card-2", Network: models.NetworkAmex, BankName: "OTHERBANK", LastFourDigits: "9999"},
	}
}

func TestOffersForCardsAllSucceed(t *testing.T) {
	db := openTestDB(t)
	source := &fakeSource{fetch: func(_ context.Context, card CardContext) ([]Offer, error) {
		return []Offer{{Title: "Offer for " + card.BankName}}, nil
	}}

	results, err := NewFacade(source, db).OffersForCards(context.Background(), "+15551234567", testCards())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "card-1", results[0].CardID)
	assert.Equal(t, "Offer for TESTBANK", results[0].Offers[0].Title)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "card-2", results[1].CardID)
	assert.Equal(t, "Offer for OTHERBANK", results[1].Offers[0].Title)

	// Each successful fetch leaves an audit row.
	var logs []models.OfferLog
	require.NoError(t, db.Find(&logs).Error)
	assert.Len(t, logs, 2)
	assert.Equal(t, "fake", logs[0].Source)
}

func TestOffersForCardsPartialFailure(t *testing.T) {
	db := openTestDB(t)
	source := &fakeSource{fetch: func(_ context.Context, card CardContext) ([]Offer, error) {
		if card.CardID == "card-2" {
			return nil, errors.New("generator down")
		}
		return []Offer{{Title: "ok"}}, nil
	}}

	results, err := NewFacade(source, db).OffersForCards(context.Background(), "+15551234567", testCards())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
	assert.Empty(t, results[1].Offers)
}

func TestOffersForCardsAllFail(t *testing.T) {
	db := openTestDB(t)
	source := &fakeSource{fetch: func(_ context.Context, _ CardContext) ([]Offer, error) {
		return nil, errors.New("generator down")
	}}

	results, err := NewFacade(source, db).OffersForCards(context.Background(), "+15551234567", testCards())
	assert.ErrorIs(t, err, ErrAllFailed)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)

	var count int64
	require.NoError(t, db.Model(&models.OfferLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Cancelling the batch context unblocks every outstanding generator call.
func TestOffersForCardsCancellation(t *testing.T) {
	db := openTestDB(t)

	started := make(chan struct{}, 2)
	source := &fakeSource{fetch: func(ctx context.Context, _ CardContext) ([]Offer, error) {
		started <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var results []CardOffers
	var err error
	done := make(chan struct{})
	go func() {
		results, err = NewFacade(source, db).OffersForCards(ctx, "+15551234567", testCards())
		close(done)
	}()

	// Both fetches are blocked on the context before it is cancelled.
	<-started
	<-started
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fan-out did not return after cancellation")
	}

	assert.ErrorIs(t, err, ErrAllFailed)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEmpty(t, r.Error)
	}
}

func TestStaticSource(t *testing.T) {
	offers, err := NewStaticSource().FetchOffers(context.Background(), testCards()[0])
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	assert.Contains(t, offers[0].Description, "TESTBANK")
}

func TestAISourceParsesCompletion(t *testing.T) {
	completion := "```json\n[{\"title\":\"10% Cashback\",\"description\":\"On everything\",\"category\":\"SHOPPING\"}]\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": completion}},
			},
		})
	}))
	defer server.Close()

	source := NewAISource(server.URL, "test-key", "test-model")
	offers, err := source.FetchOffers(context.Background(), testCards()[0])
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "10% Cashback", offers[0].Title)
	assert.Equal(t, "SHOPPING", offers[0].Category)
}

func TestAISourceVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewAISource(server.URL, "test-key", "test-model")
	_, err := source.FetchOffers(context.Background(), testCards()[0])
	assert.Error(t, err)
}

func TestParseOffersJSON(t *testing.T) {
	offers, err := parseOffersJSON(`[{"title":"A","description":"B"}]`)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	offers, err = parseOffersJSON("Here you go:\n```json\n[{\"title\":\"A\",\"description\":\"B\"}]\n```")
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	_, err = parseOffersJSON("no offers today")
	assert.Error(t, err)
}
