package domain

// EvaluationCriterion is one scored aspect of a criteria-based evaluation.
// A zero weight means "no explicit weight"; such criteria share weight
// equally with the others.
type EvaluationCriterion struct {
	ID           uint    `json:"id"`
	EventID      uint    `json:"event_id"`
	CommissionID *uint   `json:"commission_id,omitempty"` // nil = applies to all commissions
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	MinScore     int     `json:"min_score"`
	MaxScore     int     `json:"max_score"`
	IsRequired   bool    `json:"is_required"`
	DisplayOrder int     `json:"display_order"`
}

func (c EvaluationCriterion) InBounds(score int) bool {
	return score >= c.MinScore && score <= c.MaxScore
}
