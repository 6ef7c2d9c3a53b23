package gmat

import (
	"fmt"
	"os"
	"sync"
)

// StyleGuide supplies the text embedded into the question system prompt.
type StyleGuide interface {
	Load() (string, error)
}

// ErrStyleGuideUnavailable indicates the style guide could not be read.
type ErrStyleGuideUnavailable struct {
	Path string
	Err  error
}

func (e *ErrStyleGuideUnavailable) Error() string {
	return fmt.Sprintf("gmat style guide not found: %s", e.Path)
}

func (e *ErrStyleGuideUnavailable) Unwrap() error { return e.Err }

// FileStyleGuide reads the guide from disk on every Load, so edits take
// effect without a restart.
type FileStyleGuide struct {
	Path string
}

func (f FileStyleGuide) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", &ErrStyleGuideUnavailable{Path: f.Path, Err: err}
	}
	return string(data), nil
}

// CachedStyleGuide memoizes the first successful Load of its source.
// Failures are not cached.
type CachedStyleGuide struct {
	src StyleGuide

	mu     sync.Mutex
	text   string
	loaded bool
}

// NewCachedStyleGuide wraps src.
func NewCachedStyleGuide(src StyleGuide) *CachedStyleGuide {
	return &CachedStyleGuide{src: src}
}

func (c *CachedStyleGuide) Load() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.text, nil
	}
	text, err := c.src.Load()
	if err != nil {
		return "", err
	}
	c.text, c.loaded = text, true
	return text, nil
}

// StaticStyleGuide is a fixed in-memory guide.
type StaticStyleGuide string

func (s StaticStyleGuide) Load() (string, error) {
	return string(s), nil
}
