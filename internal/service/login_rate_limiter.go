package service

import (
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter frena intentos de login repetidos por usuario.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type memoryLoginRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]*rateEntry
}

type rateEntry struct {
	count     int
	windowEnd time.Time
}

func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLoginRateLimiter{
		window:  window,
		max:     max,
		entries: make(map[string]*rateEntry),
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	entry, ok := l.entries[normalizedKey]
	if !ok || now.After(entry.windowEnd) {
		l.entries[normalizedKey] = &rateEntry{count: 1, windowEnd: now.Add(l.window)}
		return true
	}
	entry.count++
	return entry.count <= l.max
}
