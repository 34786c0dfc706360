package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CommissionMemberInput struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (in CommissionMemberInput) Validate() error {
	return validation.ValidateStruct(
		&in,
		validation.Field(&in.UserID, validation.Required),
		validation.Field(&in.Role, validation.Required, validation.In("main_member", "president", "member", "trainee")),
	)
}

type CreateCommissionRequest struct {
	Name    string                  `json:"name"`
	Members []CommissionMemberInput `json:"members"`
}

func (req *CreateCommissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Members, validation.Required),
	)
}

type AddMemberRequest struct {
	CommissionMemberInput
}

type ExcludeMemberRequest struct {
	Reason string `json:"reason"`
}

func (req *ExcludeMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required),
	)
}

type AssignCategoryRequest struct {
	CategoryID uint `json:"category_id"`
}

func (req *AssignCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CategoryID, validation.Required),
	)
}
