package dto

import (
	"strings"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
)

type LoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	in.Phone = strings.TrimSpace(in.Phone)
	in.Password = strings.TrimSpace(in.Password)

	if len(in.Phone) != domain.PhoneLength {
		return apierrors.Validationf("phone must be exactly %d characters", domain.PhoneLength)
	}
	if in.Password == "" {
		return apierrors.Validationf("password is required")
	}

	return nil
}

// ExtendInput asks for a token's expiry to be pushed out. Extend must be
// literally true.
type ExtendInput struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}

func (in *ExtendInput) Validate() error {
	if len(in.ID) != domain.IDLength {
		return apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}
	if !in.Extend {
		return apierrors.Validationf("extend must be true")
	}

	return nil
}
