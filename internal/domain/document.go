package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDocumentTransition = errors.New("invalid document status transition")
	ErrNotLatestVersion          = errors.New("only the latest document version may be sent")
	ErrBrokenVersionChain        = errors.New("document version chain is broken")
)

type DocumentKind string

const (
	DocumentKindProtocol DocumentKind = "protocol"
	DocumentKindRecord   DocumentKind = "record"
)

type DocumentStatus string

const (
	DocumentStatusDraft        DocumentStatus = "draft"
	DocumentStatusGenerated    DocumentStatus = "generated"
	DocumentStatusSent         DocumentStatus = "sent"
	DocumentStatusAcknowledged DocumentStatus = "acknowledged"
)

// ResultDocument is one immutable version of a generated result artifact
// (protocol or record). Versions of one document share a stable number and
// form an append-only chain linked backwards through PreviousVersionID.
type ResultDocument struct {
	ID                uint           `json:"id"`
	Kind              DocumentKind   `json:"kind"`
	SampleID          uint           `json:"sample_id"`
	ApplicantID       uint           `json:"applicant_id"`
	EventID           uint           `json:"event_id"`
	Number            string         `json:"number"`
	Version           int            `json:"version"`
	PreviousVersionID *uint          `json:"previous_version_id,omitempty"`
	FinalScore        float64        `json:"final_score"`
	Status            DocumentStatus `json:"status"`
	GeneratedAt       *time.Time     `json:"generated_at,omitempty"`
	SentAt            *time.Time     `json:"sent_at,omitempty"`
	AcknowledgedAt    *time.Time     `json:"acknowledged_at,omitempty"`
	CreatedByID       uint           `json:"created_by_id"`
	CreatedAt         time.Time      `json:"created_at"`
}

// NewResultDocument creates version 1 of a document with a caller-assigned
// number.
func NewResultDocument(kind DocumentKind, sample ProductSample, number string, score float64, userID uint) ResultDocument {
	return ResultDocument{
		Kind:        kind,
		SampleID:    sample.ID,
		ApplicantID: sample.ApplicantID,
		EventID:     sample.EventID,
		Number:      number,
		Version:     1,
		FinalScore:  score,
		Status:      DocumentStatusDraft,
		CreatedByID: userID,
	}
}

// NewVersion derives the next version from prev: same number, version
// incremented by one, status reset to draft, fresh score snapshot. The
// previous version itself is never mutated.
func (d ResultDocument) NewVersion(score float64, userID uint) ResultDocument {
	prevID := d.ID

	return ResultDocument{
		Kind:              d.Kind,
		SampleID:          d.SampleID,
		ApplicantID:       d.ApplicantID,
		EventID:           d.EventID,
		Number:            d.Number,
		Version:           d.Version + 1,
		PreviousVersionID: &prevID,
		FinalScore:        score,
		Status:            DocumentStatusDraft,
		CreatedByID:       userID,
	}
}

func (d *ResultDocument) MarkGenerated(now time.Time) error {
	if d.Status != DocumentStatusDraft {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidDocumentTransition, d.Status, DocumentStatusGenerated)
	}

	d.Status = DocumentStatusGenerated
	d.GeneratedAt = &now

	return nil
}

func (d *ResultDocument) MarkSent(now time.Time) error {
	if d.Status != DocumentStatusGenerated {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidDocumentTransition, d.Status, DocumentStatusSent)
	}

	d.Status = DocumentStatusSent
	d.SentAt = &now

	return nil
}

func (d *ResultDocument) MarkAcknowledged(now time.Time) error {
	if d.Status != DocumentStatusSent {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidDocumentTransition, d.Status, DocumentStatusAcknowledged)
	}

	d.Status = DocumentStatusAcknowledged
	d.AcknowledgedAt = &now

	return nil
}

// OrderVersionChain arranges the given versions of one document from the
// latest back to version 1, following PreviousVersionID pointers, and
// verifies the chain has no cycles and strictly decreasing version numbers.
func OrderVersionChain(versions []ResultDocument) ([]ResultDocument, error) {
	if len(versions) == 0 {
		return nil, nil
	}

	byID := make(map[uint]ResultDocument, len(versions))
	referenced := make(map[uint]bool, len(versions))
	for _, v := range versions {
		byID[v.ID] = v
		if v.PreviousVersionID != nil {
			referenced[*v.PreviousVersionID] = true
		}
	}

	var head *ResultDocument
	for _, v := range versions {
		if !referenced[v.ID] {
			if head != nil {
				return nil, fmt.Errorf("%w: more than one head version", ErrBrokenVersionChain)
			}
			v := v
			head = &v
		}
	}
	if head == nil {
		return nil, fmt.Errorf("%w: cycle detected", ErrBrokenVersionChain)
	}

	chain := make([]ResultDocument, 0, len(versions))
	seen := make(map[uint]bool, len(versions))
	cur := *head
	for {
		if seen[cur.ID] {
			return nil, fmt.Errorf("%w: cycle detected", ErrBrokenVersionChain)
		}
		seen[cur.ID] = true
		chain = append(chain, cur)

		if cur.PreviousVersionID == nil {
			break
		}
		prev, ok := byID[*cur.PreviousVersionID]
		if !ok {
			return nil, fmt.Errorf("%w: missing version %d", ErrBrokenVersionChain, cur.Version-1)
		}
		if prev.Version >= cur.Version {
			return nil, fmt.Errorf("%w: version numbers not strictly decreasing", ErrBrokenVersionChain)
		}
		cur = prev
	}

	if chain[len(chain)-1].Version != 1 {
		return nil, fmt.Errorf("%w: chain does not end at version 1", ErrBrokenVersionChain)
	}

	return chain, nil
}
