package dto

import (
	"strings"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
)

type RegisterInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	TOSAgreement bool   `json:"tosAgreement"`
}

// Validate trims the string fields and checks every required field. It never
// touches storage.
func (in *RegisterInput) Validate() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Password = strings.TrimSpace(in.Password)

	switch {
	case in.FirstName == "":
		return apierrors.Validationf("firstName is required")
	case in.LastName == "":
		return apierrors.Validationf("lastName is required")
	case len(in.Phone) != domain.PhoneLength:
		return apierrors.Validationf("phone must be exactly %d characters", domain.PhoneLength)
	case in.Password == "":
		return apierrors.Validationf("password is required")
	case !in.TOSAgreement:
		return apierrors.Validationf("tosAgreement must be accepted")
	}

	return nil
}

// UpdateAccountInput carries an account update. Empty optional fields are
// left untouched; at least one must be supplied.
type UpdateAccountInput struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (in *UpdateAccountInput) Validate() error {
	in.Phone = strings.TrimSpace(in.Phone)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Password = strings.TrimSpace(in.Password)

	if len(in.Phone) != domain.PhoneLength {
		return apierrors.Validationf("phone must be exactly %d characters", domain.PhoneLength)
	}
	if in.FirstName == "" && in.LastName == "" && in.Password == "" {
		return apierrors.Validationf("at least one field to update is required")
	}

	return nil
}

// AccountOutput is the caller-facing view of an account. The credential hash
// is never part of it.
type AccountOutput struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Phone        string   `json:"phone"`
	TOSAgreement bool     `json:"tosAgreement"`
	Checks       []string `json:"checks"`
}

// NewAccountOutput strips the credential hash from an account record.
func NewAccountOutput(a *domain.Account) *AccountOutput {
	checks := a.Checks
	if checks == nil {
		checks = []string{}
	}
	return &AccountOutput{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Phone:        a.Phone,
		TOSAgreement: a.TOSAgreement,
		Checks:       checks,
	}
}
