package dashboard

import (
	"errors"
	"strings"
)

// Add-side validation errors. The add flow surfaces a single coarse message
// instead of a field map: a fresh draft is low-stakes, and the first problem
// found is enough to act on.
var (
	errMissingRequired = errors.New("Please fill all required fields.")
	errMissingPrice    = errors.New("At least one price (Half or Full) is required.")
	errBadHalfPrice    = errors.New("Half price must be a valid number.")
	errBadFullPrice    = errors.New("Full price must be a valid number.")
)

// ValidateAddDraft checks a draft before the create request. It returns the
// first violation found, or nil when the draft may be submitted.
func ValidateAddDraft(d ItemDraft) error {
	if d.DishName == "" || d.Category == "" {
		return errMissingRequired
	}
	if d.HalfPrice == "" && d.FullPrice == "" {
		return errMissingPrice
	}
	if _, ok := parsePrice(d.HalfPrice); !ok {
		return errBadHalfPrice
	}
	if _, ok := parsePrice(d.FullPrice); !ok {
		return errBadFullPrice
	}
	return nil
}

// ValidateEditDraft checks a draft before the update request. Edits operate
// on an existing record, so every invalid field is reported individually and
// the rest of the draft is left intact. An empty map means the draft may be
// submitted.
func ValidateEditDraft(d ItemDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.DishName) == "" {
		errs["dishName"] = "Dish name is required"
	}
	if d.Category == "" {
		errs["category"] = "Category is required"
	}
	if strings.TrimSpace(d.HalfPrice) == "" && strings.TrimSpace(d.FullPrice) == "" {
		errs["price"] = "At least one price (Half or Full) is required"
	} else {
		if _, ok := parsePrice(d.HalfPrice); !ok {
			errs["halfPrice"] = "Please enter a valid half price"
		}
		if _, ok := parsePrice(d.FullPrice); !ok {
			errs["fullPrice"] = "Please enter a valid full price"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
