package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	assert.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestWorkflowState_Terminal(t *testing.T) {
	assert.True(t, WorkflowCompleted.Terminal())
	assert.True(t, WorkflowFailed.Terminal())
	for _, s := range PendingWorkflowStates {
		assert.False(t, s.Terminal(), s)
	}
}
