//nolint:revive // types is a standard Go package name pattern
package types

// Project status values used by the remote store.
const (
	ProjectStatusDraft  = "draft"
	ProjectStatusActive = "active"
	ProjectStatusDone   = "done"
)

// Project is an engagement with a client.
type Project struct {
	ProjectID        FlexString `json:"project_id"`
	ClientID         FlexString `json:"client_id"`
	ProjectTitle     string     `json:"project_title"`
	ShortDescription string     `json:"short_description"`
	LongDescription  string     `json:"long_description"`
	ProjectFeatures  StringList `json:"project_features"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	Budget           Amount     `json:"budget"`
	PaymentTerms     string     `json:"payment_terms"`
	Deliverables     StringList `json:"deliverables"`
	Status           string     `json:"status,omitempty"`
	CreatedAt        string     `json:"created_at,omitempty"`
}

// Fields returns the project as a template context map. Lists are exposed
// as []any so that loops can iterate them.
func (p Project) Fields() map[string]any {
	return map[string]any{
		"project_id":        p.ProjectID.String(),
		"client_id":         p.ClientID.String(),
		"project_title":     p.ProjectTitle,
		"short_description": p.ShortDescription,
		"long_description":  p.LongDescription,
		"project_features":  p.ProjectFeatures.Any(),
		"start_date":        p.StartDate,
		"end_date":          p.EndDate,
		"budget":            p.Budget.Float64(),
		"payment_terms":     p.PaymentTerms,
		"deliverables":      p.Deliverables.Any(),
		"status":            p.Status,
		"created_at":        p.CreatedAt,
	}
}

// IsDraft reports whether the project is still a draft.
func (p Project) IsDraft() bool {
	return p.Status == ProjectStatusDraft
}
