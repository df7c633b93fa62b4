package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the API root, e.g. https://backend.example.com/api.
	BaseURL string
	// UploadsBaseURL serves static uploads; defaults to BaseURL without the
	// trailing /api segment when empty is fine for most deployments, so it is
	// simply required when image URLs are derived.
	UploadsBaseURL string
	HTTPClient     *http.Client
	Logger         logrus.FieldLogger
}

// Client talks to the menu-publishing backend. Session credentials live in
// the underlying cookie jar, so every authenticated call attaches them
// automatically.
type Client struct {
	baseURL     string
	uploadsBase string
	client      *http.Client
	log         logrus.FieldLogger
}

// NewClient builds a client with a cookie jar for session credentials.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("backend: cookie jar: %w", err)
		}
		httpClient = &http.Client{Timeout: 15 * time.Second, Jar: jar}
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		uploadsBase: cfg.UploadsBaseURL,
		client:      httpClient,
		log:         log,
	}, nil
}

// Whoami checks whether the current session belongs to a signed-in owner.
func (c *Client) Whoami(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/users/me", nil, nil)
}

// SignOut invalidates the current session.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/users/logout", nil, nil)
}

// OwnerProfile fetches the signed-in owner's account record.
func (c *Client) OwnerProfile(ctx context.Context) (OwnerProfile, error) {
	var resp struct {
		User OwnerProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/dashboard/profile", nil, &resp); err != nil {
		return OwnerProfile{}, err
	}
	return resp.User, nil
}

// DeleteAccount permanently removes the owner account and everything under it.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/delete", nil, nil)
}

// VerifyOTP submits the emailed one-time password for account verification.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	payload := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/users/verify-otp", payload, nil)
}

// ResendOTP asks the backend to email a fresh one-time password.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/users/resend-otp", payload, nil)
}

// MyMenu fetches the full item list for the owner's café.
func (c *Client) MyMenu(ctx context.Context) ([]MenuItem, error) {
	var resp struct {
		MenuItems []MenuItem `json:"menuItems"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/my-menu", nil, &resp); err != nil {
		return nil, err
	}
	return resp.MenuItems, nil
}

type createItemPayload struct {
	DishName      string   `json:"dishName"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	IsChefSpecial bool     `json:"isChefSpecial"`
	Price         string   `json:"price"`
	HalfPrice     *float64 `json:"halfPrice,omitempty"`
	FullPrice     *float64 `json:"fullPrice,omitempty"`
}

// CreateItem adds a dish to the owner's menu. Besides the half/full pair a
// legacy single price field is sent, populated from the full price when
// present and the half price otherwise, for consumers that still expect one
// price per dish.
func (c *Client) CreateItem(ctx context.Context, input CreateItemInput) (MenuItem, error) {
	payload := createItemPayload{
		DishName:      input.DishName,
		Category:      input.Category,
		Description:   input.Description,
		IsChefSpecial: input.IsChefSpecial,
		Price:         legacyPrice(input.HalfPrice, input.FullPrice),
		HalfPrice:     input.HalfPrice,
		FullPrice:     input.FullPrice,
	}
	var resp struct {
		Menu MenuItem `json:"menu"`
	}
	if err := c.do(ctx, http.MethodPost, "/dashboard/menu", payload, &resp); err != nil {
		return MenuItem{}, err
	}
	return resp.Menu, nil
}

type updateItemPayload struct {
	DishName      string   `json:"dishName"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	IsChefSpecial bool     `json:"isChefSpecial"`
	HalfPrice     *float64 `json:"halfPrice,omitempty"`
	FullPrice     *float64 `json:"fullPrice,omitempty"`
}

// UpdateItem replaces the mutable fields of an existing dish.
func (c *Client) UpdateItem(ctx context.Context, id string, input UpdateItemInput) (MenuItem, error) {
	if id == "" {
		return MenuItem{}, ErrMissingID
	}
	payload := updateItemPayload{
		DishName:      input.DishName,
		Category:      input.Category,
		Description:   input.Description,
		IsChefSpecial: input.IsChefSpecial,
		HalfPrice:     input.HalfPrice,
		FullPrice:     input.FullPrice,
	}
	var resp struct {
		Menu MenuItem `json:"menu"`
	}
	if err := c.do(ctx, http.MethodPut, "/dashboard/menu/"+id, payload, &resp); err != nil {
		return MenuItem{}, err
	}
	return resp.Menu, nil
}

// DeleteItem removes a dish from the menu.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.do(ctx, http.MethodDelete, "/dashboard/menu/"+id, nil, nil)
}

// ToggleAvailability flips a dish's availability and returns the value the
// server settled on, which may differ from what the caller expected.
func (c *Client) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	var resp struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := c.do(ctx, http.MethodPut, "/dashboard/menu/"+id+"/toggle-availability", nil, &resp); err != nil {
		return false, err
	}
	return resp.IsAvailable, nil
}

// Cafe fetches the owner's café record.
func (c *Client) Cafe(ctx context.Context) (CafeProfile, error) {
	var resp struct {
		Cafe CafeProfile `json:"cafe"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/showCafe", nil, &resp); err != nil {
		return CafeProfile{}, err
	}
	return resp.Cafe, nil
}

// SaveCafe persists the full café profile.
func (c *Client) SaveCafe(ctx context.Context, profile CafeProfile) error {
	return c.do(ctx, http.MethodPost, "/dashboard/cafeinfo", profile, nil)
}

// PublicCafes lists every published café. No authentication required.
func (c *Client) PublicCafes(ctx context.Context) ([]PublicCafe, error) {
	var resp struct {
		Cafes []PublicCafe `json:"cafes"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/public-cafes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cafes, nil
}

// PublicMenu fetches a café's menu grouped by category. No authentication
// required.
func (c *Client) PublicMenu(ctx context.Context, cafeID string) ([]CategoryGroup, error) {
	if cafeID == "" {
		return nil, ErrMissingID
	}
	var resp struct {
		Categories []CategoryGroup `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/public-menu/"+cafeID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// UploadsBaseURL exposes the static uploads root for derived image URLs.
func (c *Client) UploadsBaseURL() string {
	return c.uploadsBase
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("backend request failed")
		return apiErr
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Message string `json:"message"`
		Errors  []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return apiErr
	}
	apiErr.Message = envelope.Message
	for _, e := range envelope.Errors {
		if e.Msg != "" {
			apiErr.Validation = append(apiErr.Validation, e.Msg)
		}
	}
	return apiErr
}

func legacyPrice(half, full *float64) string {
	if full != nil {
		return strconv.FormatFloat(*full, 'f', -1, 64)
	}
	if half != nil {
		return strconv.FormatFloat(*half, 'f', -1, 64)
	}
	return ""
}
