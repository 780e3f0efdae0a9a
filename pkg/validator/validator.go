package validator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxSKULength         = 50
	MaxAmount            = 999999
	MaxSearchLength      = 100
)

// Result is the outcome of validating an item payload.
// Errors keeps every violation in check order, not only the first one.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// SearchResult is the outcome of validating a free text search query
type SearchResult struct {
	IsValid bool
	Cleaned string
	Error   string
}

var (
	nameTag        = maxTag(MaxNameLength)
	descriptionTag = maxTag(MaxDescriptionLength)
	skuTag         = maxTag(MaxSKULength) + ",sku"
	searchTag      = maxTag(MaxSearchLength)
	amountTag      = "gte=0,lte=" + strconv.Itoa(MaxAmount)
)

var (
	validate   = validator.New()
	skuPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	scriptBlockPattern  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	jsURIPattern        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
)

func init() {
	// SKU may only contain letters, digits, underscores and hyphens
	validate.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
}

// IsValidID reports whether id is non-empty once surrounding whitespace is removed
func IsValidID(id string) bool {
	return validate.Var(strings.TrimSpace(id), "required") == nil
}

// ValidateItemData checks an item payload decoded from JSON.
//
// With requireAll set (create) name, category, price and quantity must be present.
// Without it (partial update) they are only checked when the key is present.
// Description and sku are checked whenever present in either mode.
func ValidateItemData(data map[string]interface{}, requireAll bool) Result {
	errs := []string{}

	if _, ok := data["name"]; requireAll || ok {
		name, isString := data["name"].(string)
		switch {
		case !isString || validate.Var(strings.TrimSpace(name), "required") != nil:
			errs = append(errs, "Name is required and must be a non-empty string")
		case validate.Var(name, nameTag) != nil:
			errs = append(errs, "Name must not exceed 100 characters")
		}
	}

	if _, ok := data["category"]; requireAll || ok {
		category, isString := data["category"].(string)
		if !isString || validate.Var(strings.TrimSpace(category), "required") != nil {
			errs = append(errs, "Category is required and must be a non-empty string")
		}
	}

	if _, ok := data["price"]; requireAll || ok {
		price, parsed := ParseNumber(data["price"])
		if !parsed {
			errs = append(errs, "Price must be a valid positive number")
		} else if err := validate.Var(price, amountTag); err != nil {
			if failedTag(err) == "lte" {
				errs = append(errs, "Price must not exceed 999,999")
			} else {
				errs = append(errs, "Price must be a valid positive number")
			}
		}
	}

	if _, ok := data["quantity"]; requireAll || ok {
		quantity, parsed := parseWhole(data["quantity"])
		if !parsed {
			errs = append(errs, "Quantity must be a valid non-negative integer")
		} else if err := validate.Var(quantity, amountTag); err != nil {
			if failedTag(err) == "lte" {
				errs = append(errs, "Quantity must not exceed 999,999")
			} else {
				errs = append(errs, "Quantity must be a valid non-negative integer")
			}
		}
	}

	if raw, ok := data["description"]; ok {
		description, isString := raw.(string)
		if !isString {
			errs = append(errs, "Description must be a string")
		} else if validate.Var(description, descriptionTag) != nil {
			errs = append(errs, "Description must not exceed 500 characters")
		}
	}

	if raw, ok := data["sku"]; ok {
		sku, isString := raw.(string)
		if !isString {
			errs = append(errs, "SKU must be a string")
		} else if err := validate.Var(sku, skuTag); err != nil {
			if failedTag(err) == "max" {
				errs = append(errs, "SKU must not exceed 50 characters")
			} else {
				errs = append(errs, "SKU can only contain letters, numbers, underscores, and hyphens")
			}
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// SanitizeString trims str and strips script blocks, javascript: URIs
// and inline event handler attributes.
func SanitizeString(str string) string {
	cleaned := strings.TrimSpace(str)
	cleaned = scriptBlockPattern.ReplaceAllString(cleaned, "")
	cleaned = jsURIPattern.ReplaceAllString(cleaned, "")
	return eventHandlerPattern.ReplaceAllString(cleaned, "")
}

// ValidateSearchQuery accepts an absent or empty query as valid with an empty cleaned value
func ValidateSearchQuery(query interface{}) SearchResult {
	if query == nil {
		return SearchResult{IsValid: true}
	}
	q, ok := query.(string)
	if !ok {
		return SearchResult{IsValid: false, Error: "Search query must be a string"}
	}
	if q == "" {
		return SearchResult{IsValid: true}
	}
	if validate.Var(q, searchTag) != nil {
		return SearchResult{IsValid: false, Error: "Search query too long"}
	}
	return SearchResult{IsValid: true, Cleaned: SanitizeString(q)}
}

// ParseNumber converts a JSON number or numeric string to a finite float64
func ParseNumber(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInteger converts a JSON number or numeric string to an int,
// truncating any fractional part. Values outside the item quantity range
// are rejected so the conversion can never overflow.
func ParseInteger(v interface{}) (int, bool) {
	f, ok := parseWhole(v)
	if !ok || f < -MaxAmount || f > MaxAmount {
		return 0, false
	}
	return int(f), true
}

func parseWhole(v interface{}) (float64, bool) {
	f, ok := ParseNumber(v)
	if !ok {
		return 0, false
	}
	return math.Trunc(f), true
}

func maxTag(n int) string {
	return "max=" + strconv.Itoa(n)
}

func failedTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}
