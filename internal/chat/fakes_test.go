package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Rrens/teetime/internal/llm"
)

func newFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
}

type fakeTimer struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (f *fakeTimer) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (f *fakeTimer) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

type fakeConversation struct {
	mu    sync.Mutex
	sent  []string
	reply func(text string) (string, error)
}

func (c *fakeConversation) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reply != nil {
		out, err := c.reply(text)
		if err != nil {
			return "", err
		}
		c.sent = append(c.sent, text)
		return out, nil
	}
	c.sent = append(c.sent, text)
	return "Happy to help! Morning or afternoon?", nil
}

func (c *fakeConversation) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

type fakeProvider struct {
	mu       sync.Mutex
	startErr error
	reply    func(text string) (string, error)
	started  []*fakeConversation
}

func (p *fakeProvider) Name() string              { return "fake" }
func (p *fakeProvider) AvailableModels() []string { return []string{"fake-1"} }
func (p *fakeProvider) DefaultModel() string      { return "fake-1" }
func (p *fakeProvider) IsConfigured() bool        { return true }

func (p *fakeProvider) StartConversation(ctx context.Context) (llm.Conversation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.startErr != nil {
		return nil, p.startErr
	}
	c := &fakeConversation{reply: p.reply}
	p.started = append(p.started, c)
	return c, nil
}

func (p *fakeProvider) Started() []*fakeConversation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*fakeConversation(nil), p.started...)
}

type fakeContexts struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
	// onCall runs at the start of every fetch, outside the lock
	onCall func()
}

func (f *fakeContexts) Context(ctx context.Context) (string, error) {
	f.mu.Lock()
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.text == "" {
		return "Pine Valley: 4 slots tomorrow", nil
	}
	return f.text, nil
}

func (f *fakeContexts) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errUpstream = errors.New("upstream unavailable")

// failUserTurns fails the first n user turns and answers everything else
func failUserTurns(n int) func(string) (string, error) {
	var mu sync.Mutex
	return func(text string) (string, error) {
		if !strings.Contains(text, "User message:") {
			return "ok", nil
		}
		mu.Lock()
		defer mu.Unlock()
		if n > 0 {
			n--
			return "", errUpstream
		}
		return "Tomorrow at 7:30 AM is open. Shall I hold it?", nil
	}
}
