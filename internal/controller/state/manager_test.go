package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateLifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(100))

	m.SetState(100, StateGroupName)
	assert.Equal(t, StateGroupName, m.GetState(100))

	m.SetState(100, StateGroupSchedule)
	assert.Equal(t, StateGroupSchedule, m.GetState(100))

	m.ClearState(100)
	assert.Equal(t, StateNone, m.GetState(100))
}

func TestSetStateNoneRemovesRecord(t *testing.T) {
	m := NewManager()

	m.SetState(100, StateAIQuery)
	m.SetData(100, "key", "value")

	m.SetState(100, StateNone)

	assert.Equal(t, StateNone, m.GetState(100))
	_, ok := m.GetData(100, "key")
	assert.False(t, ok)
}

func TestStartDialogDropsOldScratchpad(t *testing.T) {
	m := NewManager()

	m.StartDialog(100, StateGroupName)
	m.SetData(100, "group_id", int64(10))

	// Новый диалог не должен видеть данные старого
	m.StartDialog(100, StatePaymentProof)

	assert.Equal(t, StatePaymentProof, m.GetState(100))
	_, ok := m.GetInt64(100, "group_id")
	assert.False(t, ok)
}

func TestScratchpadTypedAccess(t *testing.T) {
	m := NewManager()

	m.StartDialog(100, StateGroupSchedule)
	m.SetData(100, "group_id", int64(10))
	m.SetData(100, "payment_proof_path", "payments/7/proof.jpg")

	id, ok := m.GetInt64(100, "group_id")
	assert.True(t, ok)
	assert.Equal(t, int64(10), id)

	path, ok := m.GetString(100, "payment_proof_path")
	assert.True(t, ok)
	assert.Equal(t, "payments/7/proof.jpg", path)

	// Несовпадение типа — это отсутствие значения
	_, ok = m.GetInt64(100, "payment_proof_path")
	assert.False(t, ok)
	_, ok = m.GetString(100, "group_id")
	assert.False(t, ok)
}

func TestStatesAreIsolatedPerUser(t *testing.T) {
	m := NewManager()

	m.StartDialog(100, StateGroupName)
	m.StartDialog(200, StateAIQuery)

	m.ClearState(100)

	assert.Equal(t, StateNone, m.GetState(100))
	assert.Equal(t, StateAIQuery, m.GetState(200))
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.StartDialog(id, StateProgressData)
			m.SetData(id, "progress_kind", "training")
			m.GetState(id)
			m.ClearState(id)
		}(int64(i))
	}
	wg.Wait()
}
