package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&Category{},
		&EvaluationCriterion{},
		&ScoringPolicy{},
		&Commission{},
		&CommissionMember{},
		&CommissionCategory{},
		&ProductSample{},
		&EvaluationSession{},
		&ExpertEvaluation{},
		&CriterionEvaluation{},
		&ResultDocument{},
		&Sequence{},
	)
}
