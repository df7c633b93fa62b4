package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{BaseURL: server.URL, UploadsBaseURL: server.URL + "/uploads"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func TestWhoamiClassifiesExpiredSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeError(w, http.StatusUnauthorized, "jwt expired")
	}))
	err := client.Whoami(context.Background())
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}
	if msg := ServerMessage(err); msg != "jwt expired" {
		t.Fatalf("expected server message preserved, got %q", msg)
	}
}

func TestWhoamiClassifiesUnverifiedAccount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusForbidden, "account not verified")
	}))
	err := client.Whoami(context.Background())
	if !errors.Is(err, ErrAuthUnverified) {
		t.Fatalf("expected ErrAuthUnverified, got %v", err)
	}
}

func TestMyMenuDecodesWireIdentity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/my-menu" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"menuItems":[{"_id":"m1","dishName":"Latte","category":"Coffee & Tea","halfPrice":80,"isAvailable":true}]}`))
	}))
	items, err := client.MyMenu(context.Background())
	if err != nil {
		t.Fatalf("my menu: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m1" || items[0].DishName != "Latte" {
		t.Fatalf("unexpected items: %#v", items)
	}
	if items[0].HalfPrice == nil || *items[0].HalfPrice != 80 {
		t.Fatalf("expected half price 80, got %#v", items[0].HalfPrice)
	}
}

func TestCreateItemSendsLegacyPrice(t *testing.T) {
	var got createItemPayload
	var requestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/dashboard/menu" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		requestID = r.Header.Get("X-Request-ID")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"menu":{"_id":"m9","dishName":"Latte"}}`))
	}))

	half, full := 80.0, 120.0
	item, err := client.CreateItem(context.Background(), CreateItemInput{
		DishName:  "Latte",
		Category:  "Coffee & Tea",
		HalfPrice: &half,
		FullPrice: &full,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID != "m9" {
		t.Fatalf("expected server identity, got %q", item.ID)
	}
	if got.Price != "120" {
		t.Fatalf("expected legacy price from full price, got %q", got.Price)
	}
	if requestID == "" {
		t.Fatalf("expected X-Request-ID on mutation")
	}
}

func TestCreateItemLegacyPriceFallsBackToHalf(t *testing.T) {
	var got createItemPayload
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"menu":{"_id":"m1"}}`))
	}))
	half := 45.0
	if _, err := client.CreateItem(context.Background(), CreateItemInput{
		DishName: "Samosa", Category: "Snacks", HalfPrice: &half,
	}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if got.Price != "45" {
		t.Fatalf("expected legacy price from half price, got %q", got.Price)
	}
}

func TestUpdateItemOmitsLegacyPrice(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/dashboard/menu/m1" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"menu":{"_id":"m1"}}`))
	}))
	full := 150.0
	if _, err := client.UpdateItem(context.Background(), "m1", UpdateItemInput{
		DishName: "Latte", Category: "Coffee & Tea", FullPrice: &full,
	}); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if _, present := raw["price"]; present {
		t.Fatalf("update payload must not carry the legacy price field: %#v", raw)
	}
}

func TestUpdateItemRequiresID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected")
	}))
	if _, err := client.UpdateItem(context.Background(), "", UpdateItemInput{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestValidationErrorsJoinIntoUserMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"msg":"Dish name is required"},{"msg":"Category is required"}]}`))
	}))
	_, err := client.CreateItem(context.Background(), CreateItemInput{})
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := UserMessage(err)
	if !strings.HasPrefix(msg, "Validation failed:\n") {
		t.Fatalf("expected validation prefix, got %q", msg)
	}
	if !strings.Contains(msg, "Dish name is required") || !strings.Contains(msg, "Category is required") {
		t.Fatalf("expected both messages, got %q", msg)
	}
}

func TestUserMessageFallsBackForOpaqueErrors(t *testing.T) {
	if got := UserMessage(errors.New("connection refused")); got != "Something went wrong!" {
		t.Fatalf("unexpected fallback message %q", got)
	}
}

func TestToggleAvailabilityReturnsServerValue(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/dashboard/menu/m1/toggle-availability" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"isAvailable":false}`))
	}))
	available, err := client.ToggleAvailability(context.Background(), "m1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if available {
		t.Fatalf("expected the server-settled value false")
	}
}

func TestVerifyOTPPostsCredentials(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/verify-otp" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"message":"verified"}`))
	}))
	if err := client.VerifyOTP(context.Background(), "asha@example.com", "123456"); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if got["email"] != "asha@example.com" || got["otp"] != "123456" {
		t.Fatalf("unexpected payload %#v", got)
	}
}

func TestResendOTPSurfacesServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/resend-otp" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeError(w, http.StatusTooManyRequests, "Please wait before requesting another OTP")
	}))
	err := client.ResendOTP(context.Background(), "asha@example.com")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := UserMessage(err); got != "Error: Please wait before requesting another OTP" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCafeNotFoundClassification(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "No cafe found")
	}))
	_, err := client.Cafe(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublicMenuGroupsByCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/public-menu/c1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"categories":[{"category":"Drinks","items":[{"_id":"m1","dishName":"Lemonade"}]}]}`))
	}))
	groups, err := client.PublicMenu(context.Background(), "c1")
	if err != nil {
		t.Fatalf("public menu: %v", err)
	}
	if len(groups) != 1 || groups[0].Category != "Drinks" || len(groups[0].Items) != 1 {
		t.Fatalf("unexpected groups: %#v", groups)
	}
}
