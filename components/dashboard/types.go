package dashboard

import (
	"strconv"

	"github.com/cafemenu/menudash/pkg/backend"
)

// Categories is the fixed set a dish may belong to. The backend derives the
// per-category image from these names, so the list is not configurable.
var Categories = []string{
	"Starters",
	"Main Course",
	"Desserts",
	"Drinks",
	"Snacks",
	"Breakfast",
	"Coffee & Tea",
	"Beverages",
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// SessionStatus tracks whether the dashboard may render at all.
type SessionStatus int

const (
	// SessionUnknown means the whoami check has not completed; views render a
	// loading placeholder instead of real content.
	SessionUnknown SessionStatus = iota
	SessionAuthenticated
	SessionUnauthenticated
)

// SessionReason classifies why a session is unauthenticated.
type SessionReason int

const (
	ReasonNone SessionReason = iota
	// ReasonExpired: the session cookie is invalid; a redirect to sign-in is
	// scheduled.
	ReasonExpired
	// ReasonUnverified: the account has not passed OTP verification; a
	// redirect to the verification page is scheduled.
	ReasonUnverified
	// ReasonAbsent: any other failure; no redirect is scheduled.
	ReasonAbsent
)

// Navigation targets used by the session guard and mutation executor.
const (
	PathLanding   = "/"
	PathSignIn    = "/signin"
	PathVerifyOTP = "/verify-otp"
)

// FieldErrors maps draft field names to validation messages.
type FieldErrors map[string]string

// ItemDraft is a transient form buffer with the shape of a MenuItem minus
// identity and availability. Prices stay raw strings until validation parses
// them; an empty string means the price is absent.
type ItemDraft struct {
	DishName      string
	Category      string
	Description   string
	HalfPrice     string
	FullPrice     string
	IsChefSpecial bool
}

// DraftFromItem seeds an edit draft from a persisted item.
func DraftFromItem(item backend.MenuItem) ItemDraft {
	return ItemDraft{
		DishName:      item.DishName,
		Category:      item.Category,
		Description:   item.Description,
		HalfPrice:     formatPrice(item.HalfPrice),
		FullPrice:     formatPrice(item.FullPrice),
		IsChefSpecial: item.IsChefSpecial,
	}
}

// CreateInput converts a validated draft into the create payload.
func (d ItemDraft) CreateInput() backend.CreateItemInput {
	half, _ := parsePrice(d.HalfPrice)
	full, _ := parsePrice(d.FullPrice)
	return backend.CreateItemInput{
		DishName:      d.DishName,
		Category:      d.Category,
		Description:   d.Description,
		IsChefSpecial: d.IsChefSpecial,
		HalfPrice:     half,
		FullPrice:     full,
	}
}

// UpdateInput converts a validated draft into the update payload.
func (d ItemDraft) UpdateInput() backend.UpdateItemInput {
	half, _ := parsePrice(d.HalfPrice)
	full, _ := parsePrice(d.FullPrice)
	return backend.UpdateItemInput{
		DishName:      d.DishName,
		Category:      d.Category,
		Description:   d.Description,
		IsChefSpecial: d.IsChefSpecial,
		HalfPrice:     half,
		FullPrice:     full,
	}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// parsePrice parses a raw draft price. Empty input is a valid absent price;
// anything else must be a number strictly greater than zero.
func parsePrice(raw string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return nil, false
	}
	return &v, true
}
