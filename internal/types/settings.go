//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// DefaultCurrency is used when settings carry no currency code.
const DefaultCurrency = "IDR"

// Settings holds the operator identity printed on every document.
type Settings struct {
	YourName        string     `json:"your_name"`
	YourTitle       string     `json:"your_title"`
	YourEmail       string     `json:"your_email"`
	YourPhone       FlexString `json:"your_phone"`
	DefaultCurrency string     `json:"default_currency"`
}

// Currency returns the upper-cased currency code, defaulting to IDR.
func (s Settings) Currency() string {
	code := strings.ToUpper(strings.TrimSpace(s.DefaultCurrency))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// Fields returns the settings as a template context map.
func (s Settings) Fields() map[string]any {
	return map[string]any{
		"your_name":        s.YourName,
		"your_title":       s.YourTitle,
		"your_email":       s.YourEmail,
		"your_phone":       s.YourPhone.String(),
		"default_currency": s.Currency(),
	}
}
