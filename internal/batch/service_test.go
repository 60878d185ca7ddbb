package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActive(ctx context.Context) (*Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Batch), args.Error(1)
}

func (m *MockRepository) SetDeadline(ctx context.Context, id uint, deadline time.Time) error {
	return m.Called(ctx, id, deadline).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, b Batch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) Insert(ctx context.Context, b Batch) (uint, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(uint), args.Error(1)
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(repo Repository, c *clock) *service {
	return &service{repo: repo, now: c.now}
}

var start = time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC)

func TestService_GetActive_Fallback(t *testing.T) {
	ctx := context.Background()

	t.Run("NoActiveBatch", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(nil, ErrNoActiveBatch)

		b := newTestService(repo, &clock{start}).GetActive(ctx)
		assert.Equal(t, Fallback, b)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(nil, errors.New("connection refused"))

		b := newTestService(repo, &clock{start}).GetActive(ctx)
		assert.Equal(t, "1:03:12:45", b.Countdown)
		assert.Equal(t, "Sabtu, 14 Februari", b.ShipmentDate)
	})
}

func TestService_GetActive_Countdown(t *testing.T) {
	ctx := context.Background()
	deadline := start.Add(26*time.Hour + 3*time.Minute + 4*time.Second)
	c := &clock{start}

	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 3, Name: "Batch Jumat", Countdown: "1:02:03:04", Deadline: &deadline, IsActive: true}, nil)
	svc := newTestService(repo, c)

	first := svc.GetActive(ctx)
	assert.Equal(t, "1:02:03:04", first.Countdown)

	c.t = start.Add(500 * time.Millisecond)
	assert.Equal(t, "1:02:03:03", svc.GetActive(ctx).Countdown)

	c.t = start.Add(time.Hour)
	assert.Equal(t, "1:01:03:04", svc.GetActive(ctx).Countdown)

	c.t = deadline
	assert.Equal(t, ZeroCountdown, svc.GetActive(ctx).Countdown)

	c.t = deadline.Add(48 * time.Hour)
	assert.Equal(t, ZeroCountdown, svc.GetActive(ctx).Countdown)

	repo.AssertNotCalled(t, "SetDeadline", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetActive_NonIncreasing(t *testing.T) {
	ctx := context.Background()
	deadline := start.Add(90 * time.Second)
	c := &clock{start}

	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 1, Deadline: &deadline}, nil)
	svc := newTestService(repo, c)

	prev, err := ParseCountdown(svc.GetActive(ctx).Countdown)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		c.t = c.t.Add(700 * time.Millisecond)
		cur, err := ParseCountdown(svc.GetActive(ctx).Countdown)
		require.NoError(t, err)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, time.Duration(0))
		prev = cur
	}
	assert.Equal(t, time.Duration(0), prev)
}

func TestService_GetActive_LegacyMigration(t *testing.T) {
	ctx := context.Background()
	c := &clock{start}

	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 7, Countdown: "1:02:03:04", IsActive: true}, nil).Once()

	expected := start.Add(26*time.Hour + 3*time.Minute + 4*time.Second)
	repo.On("SetDeadline", ctx, uint(7), expected).Return(nil).Once()

	svc := newTestService(repo, c)
	b := svc.GetActive(ctx)

	require.NotNil(t, b.Deadline)
	assert.WithinDuration(t, expected, *b.Deadline, time.Second)
	assert.Equal(t, "1:02:03:04", b.Countdown)

	// The next read sees the persisted deadline and keeps counting down.
	repo.On("GetActive", ctx).Return(&Batch{ID: 7, Countdown: "1:02:03:04", Deadline: &expected, IsActive: true}, nil)
	c.t = start.Add(10 * time.Second)
	assert.Equal(t, "1:02:02:54", svc.GetActive(ctx).Countdown)

	repo.AssertExpectations(t)
}

func TestService_GetActive_LegacyThreeFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 2, Countdown: "03:12:45"}, nil)
	repo.On("SetDeadline", ctx, uint(2), start.Add(3*time.Hour+12*time.Minute+45*time.Second)).Return(nil)

	b := newTestService(repo, &clock{start}).GetActive(ctx)
	assert.Equal(t, "0:03:12:45", b.Countdown)
	repo.AssertExpectations(t)
}

func TestService_GetActive_UnparsableLegacy(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 4, Countdown: "besok pagi"}, nil)

	b := newTestService(repo, &clock{start}).GetActive(ctx)

	assert.Nil(t, b.Deadline)
	assert.Equal(t, "besok pagi", b.Countdown)
	repo.AssertNotCalled(t, "SetDeadline", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetActive_PersistFailureStillCountsDown(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 5, Countdown: "0:00:10:00"}, nil)
	repo.On("SetDeadline", ctx, uint(5), mock.Anything).Return(errors.New("read-only"))

	b := newTestService(repo, &clock{start}).GetActive(ctx)
	assert.Equal(t, "0:00:10:00", b.Countdown)
	assert.NotNil(t, b.Deadline)
}

func TestService_GetActive_EmptyCountdown(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetActive", ctx).Return(&Batch{ID: 6}, nil)

	b := newTestService(repo, &clock{start}).GetActive(ctx)
	assert.Equal(t, ZeroCountdown, b.Countdown)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesActiveBatch", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(&Batch{ID: 9, IsActive: true}, nil)

		expectedDeadline := start.Add(26*time.Hour + 30*time.Minute)
		repo.On("Update", ctx, mock.MatchedBy(func(b Batch) bool {
			return b.ID == 9 &&
				b.Countdown == "1:02:30:00" &&
				b.Deadline != nil && b.Deadline.Equal(expectedDeadline)
		})).Return(nil)

		b, err := newTestService(repo, &clock{start}).Update(ctx, UpdateInput{
			Name: "Batch Senin", ShipmentDate: "Senin, 16 Februari", Status: "Buka",
			Days: "1", Hours: "2", Minutes: "30",
		})
		require.NoError(t, err)
		assert.Equal(t, "1:02:30:00", b.Countdown)
		assert.WithinDuration(t, expectedDeadline, *b.Deadline, time.Second)
		repo.AssertExpectations(t)
	})

	t.Run("InsertsWhenNoneActive", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(nil, ErrNoActiveBatch)
		repo.On("Insert", ctx, mock.MatchedBy(func(b Batch) bool {
			return b.Countdown == "0:00:00:00" && b.IsActive
		})).Return(uint(12), nil)

		b, err := newTestService(repo, &clock{start}).Update(ctx, UpdateInput{
			Name: "Batch Baru", Days: "abc", Hours: "-2", Minutes: "",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(12), b.ID)
		assert.True(t, b.Deadline.Equal(start))
	})

	t.Run("LoadError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(nil, errors.New("db down"))

		_, err := newTestService(repo, &clock{start}).Update(ctx, UpdateInput{})
		assert.Error(t, err)
	})

	t.Run("UpdateError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetActive", ctx).Return(&Batch{ID: 1}, nil)
		repo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := newTestService(repo, &clock{start}).Update(ctx, UpdateInput{Days: "1"})
		assert.Error(t, err)
	})
}
