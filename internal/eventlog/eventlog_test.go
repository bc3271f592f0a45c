package eventlog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobildev/online-exam/internal/db/dbtest"
	"github.com/mobildev/online-exam/internal/eventlog"
)

func TestRepo_AppendAndByKey(t *testing.T) {
	ctx := context.Background()
	repo := eventlog.NewRepo(dbtest.Open(t))

	require.NoError(t, repo.Append(ctx, eventlog.Event{Type: "submission.started", Key: "s-1", Data: map[string]any{"answers": 2}}))
	require.NoError(t, repo.Append(ctx, eventlog.Event{Type: "submission.started", Key: "s-2"}))
	require.NoError(t, repo.Append(ctx, eventlog.Event{Type: "submission.graded", Key: "s-1", Data: map[string]any{"score": "50.00"}}))

	got, err := repo.ByKey(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "submission.started", got[0].Type)
	assert.Equal(t, "submission.graded", got[1].Type)
	assert.Less(t, got[0].Seq, got[1].Seq)
	assert.EqualValues(t, 2, got[0].Data["answers"]) // JSON numbers decode as float64
	assert.Equal(t, "50.00", got[1].Data["score"])
	assert.NotZero(t, got[0].CreatedAt)

	none, err := repo.ByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}
