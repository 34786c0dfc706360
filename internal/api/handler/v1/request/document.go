package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateDocumentRequest struct {
	Kind     string `json:"kind"`
	SampleID uint   `json:"sample_id"`
}

func (req *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.Required, validation.In("protocol", "record")),
		validation.Field(&req.SampleID, validation.Required),
	)
}
