package models

// LookupCategory names one of the suggestion lists kept by the lookup store.
type LookupCategory string

const (
	LookupConsignee   LookupCategory = "consignee"
	LookupDestination LookupCategory = "destination"
)

// ParseLookupCategory accepts only the two known categories.
func ParseLookupCategory(s string) (LookupCategory, error) {
	switch c := LookupCategory(trim(s)); c {
	case LookupConsignee, LookupDestination:
		return c, nil
	default:
		return "", &ValidationError{Field: "category", Reason: "invalid dropdown type " + quote(s)}
	}
}

// LookupEntry is a single known name within a category.
type LookupEntry struct {
	ID       int64          `json:"id" db:"id"`
	Category LookupCategory `json:"category" db:"category"`
	Name     string         `json:"name" db:"name"`
}

// NormalizeLookupName trims name and rejects an empty result.
func NormalizeLookupName(name string) (string, error) {
	n := trim(name)
	if n == "" {
		return "", &ValidationError{Field: "name", Reason: "please enter a valid name"}
	}
	return n, nil
}
