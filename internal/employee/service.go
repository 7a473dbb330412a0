package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/employee-sync/internal"
)

// RepositoryAPI is the store contract: every intent in one call commits
// together or not at all, within timeout.
type RepositoryAPI interface {
	UpsertBatch(ctx context.Context, intents []UpsertIntent, timeout time.Duration) error
}

// BatchCommitted is reported after each successful batch.
type BatchCommitted struct {
	Index   int // 1-based
	Total   int
	Records int
	Elapsed time.Duration
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// UpsertAll submits batches strictly in order and stops at the first failure.
// It returns the number of records committed before that point. onCommit may be nil.
func (s *Service) UpsertAll(ctx context.Context, batches [][]Record, timeout time.Duration, onCommit func(BatchCommitted)) (int, error) {
	committed := 0
	for i, batch := range batches {
		start := time.Now()
		if err := s.UpsertBatch(ctx, i+1, batch, timeout); err != nil {
			return committed, err
		}
		committed += len(batch)

		event := BatchCommitted{
			Index:   i + 1,
			Total:   len(batches),
			Records: len(batch),
			Elapsed: time.Since(start),
		}
		s.logger.Info("batch committed",
			"batch", event.Index,
			"of", event.Total,
			"records", event.Records,
			"elapsed_ms", event.Elapsed.Milliseconds())
		if onCommit != nil {
			onCommit(event)
		}
	}
	return committed, nil
}

// UpsertBatch converts one batch to intents and commits it as a unit.
// Failures come back as BATCH_TIMEOUT or STORE_WRITE_FAILURE AppErrors.
func (s *Service) UpsertBatch(ctx context.Context, index int, batch []Record, timeout time.Duration) error {
	intents := make([]UpsertIntent, 0, len(batch))
	for _, rec := range batch {
		intent, ok := IntentFor(rec)
		if !ok {
			return apperrors.NewStoreWriteError(index, fmt.Errorf("record has no email or employeeNum"))
		}
		intents = append(intents, intent)
	}

	err := s.repo.UpsertBatch(ctx, intents, timeout)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Error("batch timed out",
			"batch", index,
			"records", len(batch),
			"timeout", timeout.String(),
			"error", err)
		return apperrors.NewBatchTimeoutError(index, err)
	}

	s.logger.Error("batch failed",
		"batch", index,
		"records", len(batch),
		"error", err)
	return apperrors.NewStoreWriteError(index, err)
}
