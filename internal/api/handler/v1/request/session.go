package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type OpenSessionRequest struct {
	SampleID     uint `json:"sample_id"`
	CommissionID uint `json:"commission_id"`
}

func (req *OpenSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SampleID, validation.Required),
		validation.Field(&req.CommissionID, validation.Required),
	)
}

type CriterionScoreInput struct {
	CriterionID uint `json:"criterion_id"`
	Score       int  `json:"score"`
}

func (in CriterionScoreInput) Validate() error {
	return validation.ValidateStruct(
		&in,
		validation.Field(&in.CriterionID, validation.Required),
	)
}

// UpsertEvaluationRequest carries either a final score or criterion
// scores, depending on the sample's evaluation mode. The service rejects
// payloads that don't match the mode.
type UpsertEvaluationRequest struct {
	MemberID        uint                  `json:"member_id"`
	FinalScore      *float64              `json:"final_score"`
	CriterionScores []CriterionScoreInput `json:"criterion_scores"`
}

func (req *UpsertEvaluationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MemberID, validation.Required),
	)
}

type ExclusionVoteRequest struct {
	MemberID uint   `json:"member_id"`
	Exclude  bool   `json:"exclude"`
	Note     string `json:"note"`
}

func (req *ExclusionVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MemberID, validation.Required),
	)
}

type SubmitEvaluationRequest struct {
	MemberID uint `json:"member_id"`
}

func (req *SubmitEvaluationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MemberID, validation.Required),
	)
}

type CalculationExclusionRequest struct {
	Excluded bool `json:"excluded"`
}
