package exam

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRows struct{ mock.Mock }

func (m *mockRows) ExamDetailRows(ctx context.Context, examID int64) ([]DetailRow, error) {
	args := m.Called(ctx, examID)
	rows, _ := args.Get(0).([]DetailRow)
	return rows, args.Error(1)
}

func (m *mockRows) ExamSummaryRows(ctx context.Context) ([]DetailRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]DetailRow)
	return rows, args.Error(1)
}

func (m *mockRows) AnswerKeyRows(ctx context.Context, examID int64) ([]AnswerKeyRow, error) {
	args := m.Called(ctx, examID)
	rows, _ := args.Get(0).([]AnswerKeyRow)
	return rows, args.Error(1)
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestService_AssembleExam(t *testing.T) {
	ctx := context.Background()
	rows := &mockRows{}
	rows.On("ExamDetailRows", ctx, int64(1)).Return([]DetailRow{
		detail(1, 10, "MULTIPLE_CHOICE", 100),
		detail(1, 11, "CLASSIC", 0),
	}, nil)

	ex, err := NewService(rows, quietLogger()).AssembleExam(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, ex.Questions, 2)
	rows.AssertExpectations(t)
}

func TestService_AssembleExam_NotFound(t *testing.T) {
	ctx := context.Background()
	rows := &mockRows{}
	rows.On("ExamDetailRows", ctx, int64(404)).Return([]DetailRow{}, nil)

	_, err := NewService(rows, quietLogger()).AssembleExam(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_AssembleExam_StorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	rows := &mockRows{}
	rows.On("ExamDetailRows", ctx, int64(1)).Return(nil, boom)

	_, err := NewService(rows, quietLogger()).AssembleExam(ctx, 1)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, boom)
}

func TestService_AssembleExam_Malformed(t *testing.T) {
	ctx := context.Background()
	rows := &mockRows{}
	rows.On("ExamDetailRows", ctx, int64(1)).Return([]DetailRow{detail(1, 10, "ESSAY", 0)}, nil)

	_, err := NewService(rows, quietLogger()).AssembleExam(ctx, 1)
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestService_AssembleAllExams(t *testing.T) {
	ctx := context.Background()
	rows := &mockRows{}
	rows.On("ExamSummaryRows", ctx).Return([]DetailRow{
		{ExamID: 1, Title: "A", DurationMinutes: 10},
		{ExamID: 2, Title: "B", Description: "second", DurationMinutes: 20},
	}, nil)

	list, err := NewService(rows, quietLogger()).AssembleAllExams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ExamSummary{
		{ID: 1, Title: "A", DurationMinutes: 10},
		{ID: 2, Title: "B", Description: "second", DurationMinutes: 20},
	}, list)
}

func TestStorageError_Idempotent(t *testing.T) {
	base := errors.New("disk full")
	once := StorageError("save", base)
	twice := StorageError("outer", once)
	assert.Same(t, once, twice)
	assert.Nil(t, StorageError("noop", nil))
}
