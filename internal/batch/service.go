package batch

import (
	"context"
	"errors"
	"time"

	"sukaikan/internal/logger"
	"sukaikan/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	// GetActive returns the active batch with a countdown derived from its
	// deadline at call time. It never fails: read errors yield Fallback.
	GetActive(ctx context.Context) Batch
	Update(ctx context.Context, input UpdateInput) (*Batch, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GetActive(ctx context.Context) Batch {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetActive"),
	)

	stored, err := s.repo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoActiveBatch) {
			log.Error("failed to load active batch, using fallback", zap.Error(err))
		}
		return Fallback
	}

	b := *stored
	now := s.now()

	// Older records only carry a duration; pin it to an absolute deadline
	// the first time they are read.
	if b.Deadline == nil && b.Countdown != "" {
		d, err := ParseCountdown(b.Countdown)
		if err != nil {
			log.Warn("failed to migrate countdown to deadline",
				zap.Uint("batch_id", b.ID),
				zap.String("countdown", b.Countdown),
				zap.Error(err),
			)
		} else {
			deadline := now.Add(d)
			if err := s.repo.SetDeadline(ctx, b.ID, deadline); err != nil {
				log.Error("failed to persist migrated deadline", zap.Uint("batch_id", b.ID), zap.Error(err))
			} else {
				log.Info("migrated batch countdown to deadline",
					zap.Uint("batch_id", b.ID),
					zap.Time("deadline", deadline),
				)
			}
			b.Deadline = &deadline
		}
	}

	if b.Deadline != nil {
		b.Countdown = FormatRemaining(b.Deadline.Sub(now))
	}

	if b.Countdown == "" {
		b.Countdown = ZeroCountdown
	}
	return b
}

// Update rewrites the current active batch, or creates one when none is
// active. Other active batches are left untouched.
func (s *service) Update(ctx context.Context, input UpdateInput) (*Batch, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
	)

	days := utils.DigitsOrZero(input.Days)
	hours := utils.DigitsOrZero(input.Hours)
	minutes := utils.DigitsOrZero(input.Minutes)

	deadline := s.now().Add(time.Duration(days)*day + time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)

	b := Batch{
		Name:         input.Name,
		ShipmentDate: input.ShipmentDate,
		Status:       input.Status,
		Countdown:    formatSetCountdown(days, hours, minutes),
		Deadline:     &deadline,
		IsActive:     true,
	}

	current, err := s.repo.GetActive(ctx)
	switch {
	case err == nil:
		b.ID = current.ID
		if err := s.repo.Update(ctx, b); err != nil {
			log.Error("failed to update batch", zap.Uint("batch_id", b.ID), zap.Error(err))
			return nil, err
		}
	case errors.Is(err, ErrNoActiveBatch):
		id, err := s.repo.Insert(ctx, b)
		if err != nil {
			log.Error("failed to insert batch", zap.Error(err))
			return nil, err
		}
		b.ID = id
	default:
		log.Error("failed to load active batch", zap.Error(err))
		return nil, err
	}

	log.Info("batch updated",
		zap.Uint("batch_id", b.ID),
		zap.String("countdown", b.Countdown),
		zap.Time("deadline", deadline),
	)
	return &b, nil
}
