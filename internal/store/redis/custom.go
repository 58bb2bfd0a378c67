package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// NextCustomID allocates a custom prompt id above domain.CustomIDBase
func (s *Store) NextCustomID(ctx context.Context) (int, error) {
	n, err := s.client.Incr(ctx, CustomSeqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate custom id: %w", err)
	}
	return domain.CustomIDBase + int(n), nil
}

// SaveCustom stores a custom prompt. Custom prompts are user data and
// carry no TTL.
func (s *Store) SaveCustom(ctx context.Context, p *domain.Prompt) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal custom prompt: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, CustomKey(p.ID), data, 0)
	pipe.ZAdd(ctx, AllCustomKey(), redis.Z{
		Score:  float64(p.CreatedAt.UnixMilli()),
		Member: strconv.Itoa(p.ID),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save custom prompt: %w", err)
	}

	return nil
}

// GetCustom retrieves a custom prompt by ID
func (s *Store) GetCustom(ctx context.Context, id int) (*domain.Prompt, error) {
	data, err := s.client.Get(ctx, CustomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NotFound(id)
		}
		return nil, fmt.Errorf("failed to get custom prompt: %w", err)
	}

	var p domain.Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal custom prompt: %w", err)
	}

	return &p, nil
}

// ListCustom retrieves all custom prompts, oldest first
func (s *Store) ListCustom(ctx context.Context) ([]*domain.Prompt, error) {
	members, err := s.client.ZRange(ctx, AllCustomKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get custom prompt IDs: %w", err)
	}

	prompts := make([]*domain.Prompt, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		p, err := s.GetCustom(ctx, id)
		if err != nil {
			// Skip prompts that couldn't be retrieved
			continue
		}
		prompts = append(prompts, p)
	}

	return prompts, nil
}

// DeleteCustom removes a custom prompt
func (s *Store) DeleteCustom(ctx context.Context, id int) error {
	n, err := s.client.Del(ctx, CustomKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete custom prompt: %w", err)
	}

	// Remove from set of all custom prompts
	if err := s.client.ZRem(ctx, AllCustomKey(), strconv.Itoa(id)).Err(); err != nil {
		return fmt.Errorf("failed to remove custom prompt from set: %w", err)
	}

	if n == 0 {
		return domain.NotFound(id)
	}
	return nil
}
