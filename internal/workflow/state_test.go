package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
)

func TestStateOf(t *testing.T) {
	m := testMachine()
	doc := threeStepDoc(m)
	require.NoError(t, m.Approve(&doc, 0))

	assert.Equal(t, StateCompleted, StateOf(&doc, 0))
	assert.Equal(t, StateCurrent, StateOf(&doc, 1))
	assert.Equal(t, StatePending, StateOf(&doc, 2))
	assert.Equal(t, StatePending, StateOf(&doc, 9))
	assert.Equal(t, StatePending, StateOf(nil, 0))

	require.NoError(t, m.Reject(&doc, 1))
	assert.Equal(t, StateRejected, StateOf(&doc, 1))
}

func TestCanAct(t *testing.T) {
	m := testMachine()
	doc := threeStepDoc(m)

	assert.True(t, CanAct(&doc, 0))
	assert.False(t, CanAct(&doc, 1))
	assert.False(t, CanAct(&doc, -1))
	assert.False(t, CanAct(nil, 0))

	doc.Status = model.DocumentApproved
	assert.False(t, CanAct(&doc, 0))
}
