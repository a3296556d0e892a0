package domain

import (
	"errors"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Retailer names a store whose product pages may be tracked.
type Retailer string

const (
	RetailerBestBuy Retailer = "Best Buy"
	RetailerAmazon  Retailer = "Amazon"
)

var (
	ErrInvalidRetailer = errors.New("unsupported retailer")
	ErrInvalidURL      = errors.New("url does not belong to the selected retailer")
)

// supportedRetailers is the single source for validation and for UI listings.
var supportedRetailers = []Retailer{RetailerBestBuy, RetailerAmazon}

// retailerDomains lists the URL fragments accepted for each retailer.
var retailerDomains = map[Retailer][]string{
	RetailerBestBuy: {"bestbuy.com"},
	RetailerAmazon:  {"amazon.com", "amzn.to", "a.co"},
}

// SupportedRetailers returns the retailers products may be added for, in
// display order.
func SupportedRetailers() []Retailer {
	return slices.Clone(supportedRetailers)
}

// ParseRetailer matches name exactly (case-sensitive) against the supported set.
func ParseRetailer(name string) (Retailer, error) {
	r := Retailer(name)
	if !slices.Contains(supportedRetailers, r) {
		return "", ErrInvalidRetailer
	}
	return r, nil
}

// OwnsURL reports whether rawURL, lower-cased, contains one of the retailer's
// domain fragments. Unknown retailers own nothing.
func (r Retailer) OwnsURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, fragment := range retailerDomains[r] {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// Target prices outside these bounds are treated as absent. The digit limit
// matches the Decimal128 coefficient so every stored price fits any backend.
const (
	maxPriceDigits   = 34
	minPriceExponent = -20
	maxPriceExponent = 15
)

var maxTargetPrice = decimal.New(1, maxPriceExponent)

// ParseTargetPrice converts free text into an optional price. Empty,
// unparsable or out-of-range input yields an invalid (absent) value, never
// an error.
func ParseTargetPrice(text string) decimal.NullDecimal {
	if text == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	// Exponent first: comparing or rendering 1e99999999 expands the coefficient.
	if exp := d.Exponent(); exp < minPriceExponent || exp > maxPriceExponent {
		return decimal.NullDecimal{}
	}
	if len(new(big.Int).Abs(d.Coefficient()).String()) > maxPriceDigits {
		return decimal.NullDecimal{}
	}
	if d.Abs().GreaterThanOrEqual(maxTargetPrice) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Product is one tracking request. It is never modified after creation.
type Product struct {
	ID          uuid.UUID           `json:"id"`
	URL         string              `json:"url"`
	Name        string              `json:"name"`
	Retailer    Retailer            `json:"retailer"`
	TargetPrice decimal.NullDecimal `json:"target_price"`
	AddedBy     string              `json:"added_by"`
	CreatedAt   time.Time           `json:"created_at"`
}

// VisibleTo reports whether actor may see p.
func (p Product) VisibleTo(actor Actor) bool {
	return actor.IsAdmin() || p.AddedBy == actor.Username
}
