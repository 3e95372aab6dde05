package testutil

import (
	"context"
	"fmt"
	"sync"
)

// StubRenderer returns deterministic byte payloads that encode the call that
// produced them, so tests can assert on what was rendered without decoding
// image data. A non-nil Err fails every call.
type StubRenderer struct {
	mu    sync.Mutex
	calls int

	Err error
}

func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

func (r *StubRenderer) Generate(_ context.Context, prompt string) ([]byte, string, error) {
	return r.render("generate:" + prompt)
}

func (r *StubRenderer) Edit(_ context.Context, prompt string, base []byte) ([]byte, string, error) {
	return r.render(fmt.Sprintf("edit:%s:base=%s", prompt, base))
}

func (r *StubRenderer) Flip(_ context.Context, base []byte) ([]byte, string, error) {
	return r.render(fmt.Sprintf("flip:base=%s", base))
}

// Calls returns how many render calls succeeded or failed so far.
func (r *StubRenderer) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *StubRenderer) render(payload string) ([]byte, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.Err != nil {
		return nil, "", r.Err
	}
	return []byte(payload), ".png", nil
}
