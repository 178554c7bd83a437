package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/loyalty-keeper/internal/config"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

// newTestRemote создаёт httpRemoteStore, направленный на тестовый сервер
func newTestRemote(t *testing.T, serverURL string) *httpRemoteStore {
	t.Helper()
	log := logger.Nop()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, Token: "test-token"}

	r, err := NewHTTPRemoteStore(adapterCfg, log)
	require.NoError(t, err)
	return r.(*httpRemoteStore)
}

// ── NewHTTPRemoteStore ───────────────────────────────────────────────────────

func TestNewHTTPRemoteStore_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteStore(config.ClientAdapter{HTTPAddress: "   "}, logger.Nop())
	require.Error(t, err)
}

func TestNewHTTPRemoteStore_SchemeDefaulted(t *testing.T) {
	r, err := NewHTTPRemoteStore(config.ClientAdapter{HTTPAddress: "localhost:8080"}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, r)
}

// ── GetProfile ───────────────────────────────────────────────────────────────

func TestGetProfile_Success(t *testing.T) {
	updatedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	want := models.Profile{AccountID: "acct-1", BusinessName: "Beany's", UpdatedAt: updatedAt}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/business/acct-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	got, err := remote.GetProfile(context.Background(), "acct-1")

	require.NoError(t, err)
	assert.Equal(t, want.BusinessName, got.BusinessName)
	assert.True(t, got.UpdatedAt.Equal(updatedAt))
}

func TestGetProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such business"))
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	_, err := remote.GetProfile(context.Background(), "acct-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── PutProfile ───────────────────────────────────────────────────────────────

func TestPutProfile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/business/acct-1", r.URL.Path)

		var got models.Profile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Beany's", got.BusinessName)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	err := remote.PutProfile(context.Background(), models.Profile{AccountID: "acct-1", BusinessName: "Beany's"})

	require.NoError(t, err)
}

func TestPutProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	err := remote.PutProfile(context.Background(), models.Profile{AccountID: "acct-1"})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Rewards ──────────────────────────────────────────────────────────────────

func TestListRewards_Success(t *testing.T) {
	want := []models.Reward{
		{ID: "r1", AccountID: "acct-1", Name: "Free coffee", Active: true},
		{ID: "r2", AccountID: "acct-1", Name: "Discount", Active: false},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/business/acct-1/rewards", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	got, err := remote.ListRewards(context.Background(), "acct-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
}

func TestListRewards_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	_, err := remote.ListRewards(context.Background(), "acct-1")

	require.Error(t, err)
}

func TestCreateReward_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rewards", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	err := remote.CreateReward(context.Background(), models.Reward{ID: "r1", AccountID: "acct-1"})

	require.NoError(t, err)
}

func TestDeleteReward_NotFoundMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/rewards/r1", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	err := remote.DeleteReward(context.Background(), "r1")

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Campaigns / Customers ────────────────────────────────────────────────────

func TestListCampaigns_Success(t *testing.T) {
	want := []models.Campaign{{ID: "c1", AccountID: "acct-1", Name: "Flash"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/business/acct-1/campaigns", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	got, err := remote.ListCampaigns(context.Background(), "acct-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestCreateCustomer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	err := remote.CreateCustomer(context.Background(), models.Customer{ID: "cu1"})

	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestListCustomers_Success(t *testing.T) {
	want := []models.Customer{{ID: "cu1", AccountID: "acct-1", Name: "Alex", Stamps: 3}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/business/acct-1/customers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	remote := newTestRemote(t, srv.URL)
	got, err := remote.ListCustomers(context.Background(), "acct-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Stamps)
}

// ── SetToken ─────────────────────────────────────────────────────────────────

func TestSetToken_Trimmed(t *testing.T) {
	remote := newTestRemote(t, "http://localhost:1")
	remote.SetToken("  abc  ")
	assert.Equal(t, "abc", remote.Token())
}
