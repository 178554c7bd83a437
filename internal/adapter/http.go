package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/stampdeck/loyalty-keeper/internal/config"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/internal/utils"
	"github.com/stampdeck/loyalty-keeper/models"
)

type httpRemoteStore struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. The bearer token from the config, if any, is stored via
// SetToken.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	remote := &httpRemoteStore{client: client, logger: logger}
	remote.SetToken(adapterCfg.Token)

	return remote, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpRemoteStore) Token() string {
	return h.token
}

// GetProfile implements [RemoteStore]. It GETs /api/business/{id} and decodes
// the profile record, whose UpdatedAt carries the whole-repository freshness
// timestamp.
func (h *httpRemoteStore) GetProfile(ctx context.Context, accountID string) (models.Profile, error) {
	var profile models.Profile

	resp, err := h.authedRequest(ctx).
		SetResult(&profile).
		Get("/api/business/" + url.PathEscape(accountID))
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// PutProfile implements [RemoteStore]. It PUTs the full profile record to
// /api/business/{id}.
func (h *httpRemoteStore) PutProfile(ctx context.Context, profile models.Profile) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(profile).
		Put("/api/business/" + url.PathEscape(profile.AccountID))
	if err != nil {
		return fmt.Errorf("put profile request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListRewards implements [RemoteStore]. It GETs the account's reward list
// from /api/business/{id}/rewards.
func (h *httpRemoteStore) ListRewards(ctx context.Context, accountID string) ([]models.Reward, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/business/" + url.PathEscape(accountID) + "/rewards")
	if err != nil {
		return nil, fmt.Errorf("list rewards request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var rewards []models.Reward
	if err = json.Unmarshal(resp.Body(), &rewards); err != nil {
		return nil, fmt.Errorf("decode rewards response: %w", err)
	}

	return rewards, nil
}

// CreateReward implements [RemoteStore]. It POSTs one reward to /api/rewards
// with create-or-update semantics keyed by the reward's id.
func (h *httpRemoteStore) CreateReward(ctx context.Context, reward models.Reward) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reward).
		Post("/api/rewards")
	if err != nil {
		return fmt.Errorf("create reward request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteReward implements [RemoteStore]. It DELETEs /api/rewards/{id}.
func (h *httpRemoteStore) DeleteReward(ctx context.Context, rewardID string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/rewards/" + url.PathEscape(rewardID))
	if err != nil {
		return fmt.Errorf("delete reward request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListCampaigns implements [RemoteStore]. It GETs the account's campaign list
// from /api/business/{id}/campaigns.
func (h *httpRemoteStore) ListCampaigns(ctx context.Context, accountID string) ([]models.Campaign, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/business/" + url.PathEscape(accountID) + "/campaigns")
	if err != nil {
		return nil, fmt.Errorf("list campaigns request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var campaigns []models.Campaign
	if err = json.Unmarshal(resp.Body(), &campaigns); err != nil {
		return nil, fmt.Errorf("decode campaigns response: %w", err)
	}

	return campaigns, nil
}

// CreateCampaign implements [RemoteStore]. It POSTs one campaign to
// /api/campaigns with create-or-update semantics keyed by the campaign's id.
func (h *httpRemoteStore) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(campaign).
		Post("/api/campaigns")
	if err != nil {
		return fmt.Errorf("create campaign request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteCampaign implements [RemoteStore]. It DELETEs /api/campaigns/{id}.
func (h *httpRemoteStore) DeleteCampaign(ctx context.Context, campaignID string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/campaigns/" + url.PathEscape(campaignID))
	if err != nil {
		return fmt.Errorf("delete campaign request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListCustomers implements [RemoteStore]. It GETs the account's customer list
// from /api/business/{id}/customers.
func (h *httpRemoteStore) ListCustomers(ctx context.Context, accountID string) ([]models.Customer, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/business/" + url.PathEscape(accountID) + "/customers")
	if err != nil {
		return nil, fmt.Errorf("list customers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var customers []models.Customer
	if err = json.Unmarshal(resp.Body(), &customers); err != nil {
		return nil, fmt.Errorf("decode customers response: %w", err)
	}

	return customers, nil
}

// CreateCustomer implements [RemoteStore]. It POSTs one customer to
// /api/customers with create-or-update semantics keyed by the customer's id.
func (h *httpRemoteStore) CreateCustomer(ctx context.Context, customer models.Customer) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(customer).
		Post("/api/customers")
	if err != nil {
		return fmt.Errorf("create customer request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
