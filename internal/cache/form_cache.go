package cache

import (
	"context"
	"encoding/json"
	"time"

	"auditdesk/internal/model"

	"github.com/redis/go-redis/v9"
)

const formTTL = 10 * time.Minute

// FormCache keeps form-definition snapshots in Redis so audit
// submissions don't hit Mongo for every keystroke-driven preview
type FormCache interface {
	Set(ctx context.Context, form *model.FormDefinition) error
	Get(ctx context.Context, name string) (*model.FormDefinition, error)
	Invalidate(ctx context.Context, name string) error
}

type formCache struct {
	client *redis.Client
}

// NewFormCache creates a new form cache
func NewFormCache(client *redis.Client) FormCache {
	return &formCache{
		client: client,
	}
}

func (c *formCache) key(name string) string {
	return "form:" + name
}

func (c *formCache) Set(ctx context.Context, form *model.FormDefinition) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(form.Name), data, formTTL).Err()
}

func (c *formCache) Get(ctx context.Context, name string) (*model.FormDefinition, error) {
	data, err := c.client.Get(ctx, c.key(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var form model.FormDefinition
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *formCache) Invalidate(ctx context.Context, name string) error {
	return c.client.Del(ctx, c.key(name)).Err()
}
