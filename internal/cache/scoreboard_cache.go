package cache

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Board names used by the services
const (
	BoardAgents   = "agents"   // average audit score per agent
	BoardAuditors = "auditors" // average ATA accuracy per auditor
)

// ScoreboardEntry is one ranked row of a performance board
type ScoreboardEntry struct {
	ID      string  `json:"id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
	Rank    int     `json:"rank"`
}

// ScoreboardCache maintains running-average performance boards in
// Redis ZSETs (score sum + observation count per member)
type ScoreboardCache interface {
	Record(ctx context.Context, board, memberID string, score float64) error
	GetTop(ctx context.Context, board string, limit int) ([]ScoreboardEntry, error)
}

type scoreboardCache struct {
	client *redis.Client
}

// NewScoreboardCache creates a new scoreboard cache
func NewScoreboardCache(client *redis.Client) ScoreboardCache {
	return &scoreboardCache{
		client: client,
	}
}

func (c *scoreboardCache) sumKey(board string) string {
	return fmt.Sprintf("sb:%s:sum", board)
}

func (c *scoreboardCache) countKey(board string) string {
	return fmt.Sprintf("sb:%s:count", board)
}

func (c *scoreboardCache) Record(ctx context.Context, board, memberID string, score float64) error {
	if err := c.client.ZIncrBy(ctx, c.sumKey(board), score, memberID).Err(); err != nil {
		return err
	}
	return c.client.ZIncrBy(ctx, c.countKey(board), 1, memberID).Err()
}

func (c *scoreboardCache) GetTop(ctx context.Context, board string, limit int) ([]ScoreboardEntry, error) {
	sums, err := c.client.ZRangeWithScores(ctx, c.sumKey(board), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	counts, err := c.client.ZRangeWithScores(ctx, c.countKey(board), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	countByID := make(map[string]float64, len(counts))
	for _, z := range counts {
		countByID[z.Member.(string)] = z.Score
	}

	entries := make([]ScoreboardEntry, 0, len(sums))
	for _, z := range sums {
		id := z.Member.(string)
		n := countByID[id]
		if n <= 0 {
			continue
		}
		entries = append(entries, ScoreboardEntry{
			ID:      id,
			Average: z.Score / n,
			Count:   int64(n),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Average > entries[j].Average })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
