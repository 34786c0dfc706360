package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Required),
	)
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type CreateCriterionRequest struct {
	CommissionID *uint   `json:"commission_id"`
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	MinScore     int     `json:"min_score"`
	MaxScore     int     `json:"max_score"`
	IsRequired   bool    `json:"is_required"`
	DisplayOrder int     `json:"display_order"`
}

func (req *CreateCriterionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Weight, validation.Min(0.0)),
		validation.Field(&req.MaxScore, validation.Required, validation.Min(req.MinScore)),
	)
}

type UpdateScoringPolicyRequest struct {
	TrimFromCount    int `json:"trim_from_count"`
	TrimCountHigh    int `json:"trim_count_high"`
	TrimCountLow     int `json:"trim_count_low"`
	RoundingDecimals int `json:"rounding_decimals"`
}

func (req *UpdateScoringPolicyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TrimFromCount, validation.Required, validation.Min(1)),
		validation.Field(&req.TrimCountHigh, validation.Min(0)),
		validation.Field(&req.TrimCountLow, validation.Min(0)),
		validation.Field(&req.RoundingDecimals, validation.Min(0), validation.Max(6)),
	)
}
