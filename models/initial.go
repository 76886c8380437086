package models

import "strings"

type MobileEntry struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

// Issuer is the company block printed at the top of every bill.
type Issuer struct {
	CompanyName string        `json:"company_name"`
	Address     string        `json:"address"`
	GSTIN       string        `json:"gstin"`
	Mobile      []MobileEntry `json:"mobile"`
}

// Contacts formats the mobile numbers as "number(label), number(label)".
func (i Issuer) Contacts() string {
	parts := make([]string, 0, len(i.Mobile))
	for _, m := range i.Mobile {
		if m.Label == "" {
			parts = append(parts, m.Number)
			continue
		}
		parts = append(parts, m.Number+"("+m.Label+")")
	}
	return strings.Join(parts, ", ")
}
