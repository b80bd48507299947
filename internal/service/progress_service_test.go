package service

import (
	"context"
	"testing"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddEntry(t *testing.T) {
	store := &stubProgressStore{
		createFn: func(ctx context.Context, entry *model.ProgressEntry) error {
			entry.ID = 1
			return nil
		},
	}
	svc := NewProgressService(store, zap.NewNop())

	entry, err := svc.AddEntry(context.Background(), 7, model.ProgressKindTraining, "присед 3x5", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, model.ProgressKindTraining, entry.Kind)
}

func TestAddEntryAttachmentOnly(t *testing.T) {
	svc := NewProgressService(&stubProgressStore{}, zap.NewNop())

	// Фото без подписи — валидная запись
	_, err := svc.AddEntry(context.Background(), 7, model.ProgressKindPhoto, "", "progress/7/photo.jpg")
	assert.NoError(t, err)
}

func TestAddEntryRequiresContentOrAttachment(t *testing.T) {
	svc := NewProgressService(&stubProgressStore{}, zap.NewNop())

	_, err := svc.AddEntry(context.Background(), 7, model.ProgressKindTraining, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}
