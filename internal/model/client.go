package model

import "strings"

// Client is a salon customer. Clients are matched for dedup by normalized
// phone digits first, then by lowercased email.
type Client struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	FirstVisitDate     string `json:"first_visit_date,omitempty"`
	AcquisitionChannel string `json:"acquisition_channel,omitempty"`
	Notes              string `json:"notes,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

type CreateClientRequest struct {
	Name               string `json:"name" binding:"required"`
	Phone              string `json:"phone"`
	Email              string `json:"email" binding:"omitempty,email"`
	AcquisitionChannel string `json:"acquisition_channel"`
	Notes              string `json:"notes"`
}

// NormalizePhone strips every non-digit character so that formatting
// punctuation never defeats a match ("+34 612-345-678" equals "34612345678").
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail lowercases and trims for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// minPhoneDigits guards suffix matching from firing on trivially short inputs.
const minPhoneDigits = 7

// PhoneDigitsMatch compares two already-normalized digit strings. Equal
// strings match; so does a suffix relationship, which lets a number stored
// without its country code ("612345678") match the same number submitted with
// one ("34612345678").
func PhoneDigitsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) < minPhoneDigits || len(b) < minPhoneDigits {
		return false
	}
	return strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}
