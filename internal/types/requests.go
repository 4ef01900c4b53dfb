//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ClientInput is the payload for creating or updating a client.
type ClientInput struct {
	Name    string `json:"name" validate:"required,min=1"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ProjectInput is the payload for creating or updating a project.
// Features and deliverables travel as newline-delimited text, which is how
// the spreadsheet stores them.
type ProjectInput struct {
	ClientID         string  `json:"client_id" validate:"required"`
	ProjectTitle     string  `json:"project_title" validate:"required,min=1"`
	ShortDescription string  `json:"short_description,omitempty"`
	LongDescription  string  `json:"long_description,omitempty"`
	ProjectFeatures  string  `json:"project_features,omitempty"`
	StartDate        string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Budget           float64 `json:"budget" validate:"gte=0"`
	PaymentTerms     string  `json:"payment_terms,omitempty"`
	Deliverables     string  `json:"deliverables,omitempty"`
	Status           string  `json:"status,omitempty" validate:"omitempty,oneof=draft active done"`
}

// SettingsInput is the payload for updating operator settings.
type SettingsInput struct {
	YourName        string `json:"your_name,omitempty"`
	YourTitle       string `json:"your_title,omitempty"`
	YourEmail       string `json:"your_email,omitempty" validate:"omitempty,email"`
	YourPhone       string `json:"your_phone,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty" validate:"omitempty,len=3,alpha"`
}

// SetupRequest initialises a fresh remote store.
type SetupRequest struct {
	YourName        string `json:"your_name" validate:"required,min=1"`
	YourEmail       string `json:"your_email" validate:"required,email"`
	AccessKey       string `json:"access_key" validate:"required,min=8"`
	DefaultCurrency string `json:"default_currency,omitempty" validate:"omitempty,len=3,alpha"`
}

// DuplicateDraftRequest copies a project as a draft for another client.
type DuplicateDraftRequest struct {
	OriginalProjectID string       `json:"original_project_id" validate:"required"`
	NewClientData     *ClientInput `json:"new_client_data,omitempty"`
}

// SetupStatus reports whether the remote store has been initialised.
type SetupStatus struct {
	IsSetup bool `json:"is_setup"`
}

// Validate validates the ClientInput using the validator.
func (r *ClientInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProjectInput using the validator.
func (r *ProjectInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SettingsInput using the validator.
func (r *SettingsInput) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetupRequest using the validator.
func (r *SetupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DuplicateDraftRequest, including nested client data.
func (r *DuplicateDraftRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.NewClientData != nil {
		return r.NewClientData.Validate()
	}
	return nil
}
