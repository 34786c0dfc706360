package render

import (
	"context"

	"go.uber.org/zap"

	"github.com/prodexpert/expertise-api/internal/domain"
)

// LogRenderer stands in for the PDF rendering pipeline. It records the
// request so generated documents can be traced until the real renderer
// is attached.
type LogRenderer struct{}

func NewLogRenderer() *LogRenderer {
	return &LogRenderer{}
}

func (r *LogRenderer) Render(ctx context.Context, document domain.ResultDocument) error {
	zap.L().Info("rendering document",
		zap.String("number", document.Number),
		zap.Int("version", document.Version),
		zap.String("kind", string(document.Kind)))

	return nil
}
