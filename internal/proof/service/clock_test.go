package service

import (
	"context"
	"sync"
	"time"

	"github.com/thientu9562/identity-management/pkg/requestcontext"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fixedClock) ctx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return requestcontext.WithTime(context.Background(), c.now)
}
