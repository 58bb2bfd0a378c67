package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// Get returns the annotation of a prompt id
func (s *Store) Get(ctx context.Context, promptID int) (domain.Annotation, error) {
	a := domain.Annotation{PromptID: promptID}

	score, err := s.client.ZScore(ctx, BookmarksKey(), strconv.Itoa(promptID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return a, nil
		}
		return a, fmt.Errorf("failed to get bookmark: %w", err)
	}

	a.Bookmarked = true
	a.BookmarkedAt = time.UnixMilli(int64(score))
	return a, nil
}

// Set bookmarks or clears a prompt id.
// ZADD NX keeps the first bookmark time, so bookmarking twice is a no-op.
func (s *Store) Set(ctx context.Context, promptID int, bookmarked bool, at time.Time) error {
	member := strconv.Itoa(promptID)

	if !bookmarked {
		if err := s.client.ZRem(ctx, BookmarksKey(), member).Err(); err != nil {
			return fmt.Errorf("failed to remove bookmark: %w", err)
		}
		return nil
	}

	err := s.client.ZAddNX(ctx, BookmarksKey(), redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// Annotations returns every bookmarked annotation, most recent first
func (s *Store) Annotations(ctx context.Context) ([]domain.Annotation, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, BookmarksKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	annotations := make([]domain.Annotation, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(member)
		if err != nil {
			// Skip members that are not prompt ids
			continue
		}
		annotations = append(annotations, domain.Annotation{
			PromptID:     id,
			Bookmarked:   true,
			BookmarkedAt: time.UnixMilli(int64(z.Score)),
		})
	}

	return annotations, nil
}
