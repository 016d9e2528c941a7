package postgres

import (
	"context"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
)

// SegmentRepository реализует domain.SegmentRepository
type SegmentRepository struct {
	db DBTX
}

// NewSegmentRepository создает новый SegmentRepository
func NewSegmentRepository(db DBTX) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// ListSegments получает сегменты рулетки в порядке отображения
func (r *SegmentRepository) ListSegments(ctx context.Context) ([]*domain.Segment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, label, reward_amount, weight, display_order
		 FROM roulette_segments
		 ORDER BY display_order ASC`,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to list segments: %w", err)
	}
	defer rows.Close()

	var segments []*domain.Segment
	for rows.Next() {
		segment := &domain.Segment{}
		err := rows.Scan(&segment.ID, &segment.Label, &segment.RewardAmount, &segment.Weight, &segment.DisplayOrder)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan segment: %w", err)
		}
		segments = append(segments, segment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating segments: %w", err)
	}

	return segments, nil
}

// ReplaceSegments заменяет конфигурацию сегментов целиком в одной транзакции
func (r *SegmentRepository) ReplaceSegments(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	if _, err := tx.Exec(ctx, `DELETE FROM roulette_segments`); err != nil {
		return nil, fmt.Errorf("repository: failed to delete segments: %w", err)
	}

	saved := make([]*domain.Segment, 0, len(segments))
	for _, segment := range segments {
		created := &domain.Segment{}
		err := tx.QueryRow(ctx,
			`INSERT INTO roulette_segments (label, reward_amount, weight, display_order)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, label, reward_amount, weight, display_order`,
			segment.Label, segment.RewardAmount, segment.Weight, segment.DisplayOrder,
		).Scan(&created.ID, &created.Label, &created.RewardAmount, &created.Weight, &created.DisplayOrder)

		if err != nil {
			return nil, fmt.Errorf("repository: failed to insert segment %q: %w", segment.Label, err)
		}
		saved = append(saved, created)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit segments: %w", err)
	}

	return saved, nil
}
