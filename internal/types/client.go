//nolint:revive // types is a standard Go package name pattern
package types

// Client is a customer record from the remote store.
type Client struct {
	ClientID  FlexString `json:"client_id"`
	Name      string     `json:"name"`
	Company   string     `json:"company"`
	Email     string     `json:"email"`
	Phone     FlexString `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
}

// Fields returns the client as a template context map.
func (c Client) Fields() map[string]any {
	return map[string]any{
		"client_id":  c.ClientID.String(),
		"name":       c.Name,
		"company":    c.Company,
		"email":      c.Email,
		"phone":      c.Phone.String(),
		"address":    c.Address,
		"notes":      c.Notes,
		"created_at": c.CreatedAt,
	}
}

// DisplayName prefers the company name, then the contact name.
func (c Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	if c.Name != "" {
		return c.Name
	}
	return "-"
}
