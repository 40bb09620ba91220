package dto

import (
	"strings"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
)

type CreateCheckInput struct {
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

func (in *CreateCheckInput) Validate() error {
	in.Protocol = strings.TrimSpace(in.Protocol)
	in.URL = strings.TrimSpace(in.URL)
	in.Method = strings.TrimSpace(in.Method)

	switch {
	case !domain.ValidProtocol(in.Protocol):
		return apierrors.Validationf("protocol must be http or https")
	case in.URL == "":
		return apierrors.Validationf("url is required")
	case !domain.ValidMethod(in.Method):
		return apierrors.Validationf("method must be one of get, post, put, delete")
	case len(in.SuccessCodes) == 0:
		return apierrors.Validationf("successCodes must be a non-empty list")
	case in.TimeoutSeconds < domain.MinTimeoutSeconds || in.TimeoutSeconds > domain.MaxTimeoutSeconds:
		return apierrors.Validationf("timeoutSeconds must be between %d and %d",
			domain.MinTimeoutSeconds, domain.MaxTimeoutSeconds)
	}

	return nil
}

// UpdateCheckInput carries a partial check update. Nil fields are left
// untouched; at least one must be supplied.
type UpdateCheckInput struct {
	ID             string  `json:"id"`
	Protocol       *string `json:"protocol"`
	URL            *string `json:"url"`
	Method         *string `json:"method"`
	SuccessCodes   []int   `json:"successCodes"`
	TimeoutSeconds *int    `json:"timeoutSeconds"`
}

func (in *UpdateCheckInput) Validate() error {
	if len(in.ID) != domain.IDLength {
		return apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}
	if in.Protocol == nil && in.URL == nil && in.Method == nil &&
		in.SuccessCodes == nil && in.TimeoutSeconds == nil {
		return apierrors.Validationf("at least one field to update is required")
	}

	if in.Protocol != nil && !domain.ValidProtocol(*in.Protocol) {
		return apierrors.Validationf("protocol must be http or https")
	}
	if in.URL != nil && strings.TrimSpace(*in.URL) == "" {
		return apierrors.Validationf("url must be a non-empty string")
	}
	if in.Method != nil && !domain.ValidMethod(*in.Method) {
		return apierrors.Validationf("method must be one of get, post, put, delete")
	}
	if in.SuccessCodes != nil && len(in.SuccessCodes) == 0 {
		return apierrors.Validationf("successCodes must be a non-empty list")
	}
	if in.TimeoutSeconds != nil &&
		(*in.TimeoutSeconds < domain.MinTimeoutSeconds || *in.TimeoutSeconds > domain.MaxTimeoutSeconds) {
		return apierrors.Validationf("timeoutSeconds must be between %d and %d",
			domain.MinTimeoutSeconds, domain.MaxTimeoutSeconds)
	}

	return nil
}
