package client

import (
	"context"

	"github.com/quarkframe/go-accelrt/backend"
)

func (c *Client) GetStats(ctx context.Context) (*backend.Stats, error) {
	return c.backend.GetStats(ctx)
}
