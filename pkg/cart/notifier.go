package cart

import (
	"context"
	"sync"
)

// Notifier receives user-facing notices emitted by cart mutations.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) {}

// NoticeCollector buffers notices so they can be returned with a response.
type NoticeCollector struct {
	mu      sync.Mutex
	notices []Notice
}

func (c *NoticeCollector) Notify(_ context.Context, n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Drain returns the buffered notices and resets the buffer.
func (c *NoticeCollector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}
