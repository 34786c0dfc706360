package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationSession_Complete(t *testing.T) {
	now := time.Now()

	session := EvaluationSession{Status: SessionStatusActive}

	require.NoError(t, session.Complete(now))
	assert.Equal(t, SessionStatusCompleted, session.Status)
	require.NotNil(t, session.CompletedAt)

	err := session.Complete(now)
	assert.ErrorIs(t, err, ErrSessionNotActive)
}

func TestEvaluationSession_Cancel(t *testing.T) {
	now := time.Now()

	session := EvaluationSession{Status: SessionStatusActive}

	require.NoError(t, session.Cancel(now))
	assert.Equal(t, SessionStatusCancelled, session.Status)

	for _, status := range []SessionStatus{SessionStatusCompleted, SessionStatusCancelled} {
		s := EvaluationSession{Status: status}

		err := s.Cancel(now)
		assert.ErrorIs(t, err, ErrSessionNotActive, "status %v", status)
	}
}
