package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/prodexpert/expertise-api/internal/domain"
)

// LogNotifier logs document deliveries instead of emailing applicants.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifySent(ctx context.Context, document domain.ResultDocument) error {
	zap.L().Info("document sent to applicant",
		zap.String("number", document.Number),
		zap.Int("version", document.Version),
		zap.Uint("applicant_id", document.ApplicantID))

	return nil
}
