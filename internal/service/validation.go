package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

const (
	MsgSelectTea      = "Please select a tea"
	MsgRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgInvalidPhone   = "Please enter a valid 10-digit phone number"
	maxMessageLength  = 1000
	phoneDigits       = 10
)

var (
	// \s in RE2 misses \v, NBSP and the other Unicode spaces a browser treats as blank.
	emailPattern = regexp.MustCompile(`^[^\s\x{0B}\x{FEFF}\p{Z}@]+@[^\s\x{0B}\x{FEFF}\p{Z}@]+\.[^\s\x{0B}\x{FEFF}\p{Z}@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
	stripMarkup  = bluemonday.StrictPolicy()
)

// ValidateEmail reports whether email looks like local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether phone holds exactly ten digits once every
// other character is removed.
func ValidatePhone(phone string) bool {
	return len(nonDigit.ReplaceAllString(phone, "")) == phoneDigits
}

// ValidatePlaceOrderRequest refuses an order without a tea on the menu. With
// strict set, the email and phone formats are checked too.
func ValidatePlaceOrderRequest(req *models.PlaceOrderRequest, catalog *pricing.Catalog, strict bool) error {
	if _, ok := catalog.ResolveTea(req.TeaType); !ok {
		return errors.NewValidationError("tea_type", MsgSelectTea)
	}

	if !strict {
		return nil
	}

	if req.Email != "" && !ValidateEmail(req.Email) {
		return errors.NewValidationError("email", MsgInvalidEmail)
	}
	if req.Phone != "" && !ValidatePhone(req.Phone) {
		return errors.NewValidationError("phone", MsgInvalidPhone)
	}

	return nil
}

// ValidateContactRequest refuses a contact message with any of name, email,
// subject or message left blank. With strict set, the email and phone
// formats are checked too.
func ValidateContactRequest(req *models.ContactRequest, strict bool) error {
	var verr *errors.ValidationError
	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) != "" {
			continue
		}
		if verr == nil {
			verr = errors.NewValidationError(r.field, MsgRequiredFields)
			verr.Details[r.field] = "required"
			continue
		}
		verr.WithDetail(r.field, "required")
	}
	if verr != nil {
		return verr
	}

	if !strict {
		return nil
	}

	if !ValidateEmail(req.Email) {
		return errors.NewValidationError("email", MsgInvalidEmail)
	}
	if req.Phone != "" && !ValidatePhone(req.Phone) {
		return errors.NewValidationError("phone", MsgInvalidPhone)
	}

	return nil
}

// SanitizeMessage strips markup from free text, escapes what is left and
// trims it to a storable length.
func SanitizeMessage(msg string) string {
	msg = strings.TrimSpace(stripMarkup.Sanitize(msg))

	if utf8.RuneCountInString(msg) > maxMessageLength {
		runes := []rune(msg)
		msg = string(runes[:maxMessageLength])
	}

	return msg
}

// ValidateAddToCartRequest checks a cart addition and resolves its quantity
// with the same default policy as the order form.
func ValidateAddToCartRequest(req *models.AddToCartRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.NewValidationError("name", "item name is required")
	}
	if req.Price < 0 {
		return errors.NewValidationError("price", "price cannot be negative")
	}
	if req.Price > pricing.MaxPrice {
		return errors.NewValidationError("price", fmt.Sprintf("price cannot exceed %d", pricing.MaxPrice))
	}
	if req.Quantity <= 0 {
		req.Quantity = pricing.DefaultQuantity
	}
	if req.Quantity > pricing.MaxQuantity {
		req.Quantity = pricing.MaxQuantity
	}
	return nil
}

// ValidateOrderListFilter checks paging and clamps the page size.
func ValidateOrderListFilter(filter *models.OrderListFilter) error {
	if strings.TrimSpace(filter.Email) == "" {
		return errors.NewValidationError("email", "email is required")
	}

	if filter.Limit < 0 {
		return errors.NewValidationError("limit", "limit cannot be negative")
	}

	if filter.Offset < 0 {
		return errors.NewValidationError("offset", "offset cannot be negative")
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return nil
}
