package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSampleRequest struct {
	EventID     uint   `json:"event_id"`
	CategoryID  uint   `json:"category_id"`
	ApplicantID uint   `json:"applicant_id"`
	Name        string `json:"name"`
	Mode        string `json:"mode"`
}

func (req *CreateSampleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.ApplicantID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Mode, validation.Required, validation.In("final_score", "criteria_based")),
	)
}

type ExcludeSampleRequest struct {
	Reason string `json:"reason"`
}

func (req *ExcludeSampleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required),
	)
}
