// Package cachetest provides an in-memory stand-in for the Redis commands the
// count cache issues.
package cachetest

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client implements GET, SET, DEL and SCAN over a map. Any other command
// panics through the embedded nil interface.
type Client struct {
	redis.UniversalClient

	mu    sync.Mutex
	data  map[string]string
	order []string // insertion order; deleted keys stay so cursors remain stable
}

// NewClient returns an empty Client.
func NewClient() *Client {
	return &Client{data: make(map[string]string)}
}

// Seed stores value under key without going through the command API.
func (c *Client) Seed(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		c.order = append(c.order, key)
	}
	c.data[key] = fmt.Sprint(value)
}

// Has reports whether key is present.
func (c *Client) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// Len returns the number of stored keys.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *Client) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *Client) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	c.Seed(key, value)
	return redis.NewStatusResult("OK", nil)
}

func (c *Client) Del(_ context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Scan walks keys in insertion order, count slots at a time. Keys present for
// the whole iteration are always returned, as with Redis.
func (c *Client) Scan(_ context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	if count <= 0 {
		count = 10
	}
	start := int(cursor)
	if start >= len(c.order) {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	end := min(start+int(count), len(c.order))

	var keys []string
	for _, k := range c.order[start:end] {
		if _, live := c.data[k]; !live {
			continue
		}
		if ok, _ := path.Match(match, k); ok {
			keys = append(keys, k)
		}
	}
	next := uint64(end)
	if end == len(c.order) {
		next = 0
	}
	return redis.NewScanCmdResult(keys, next, nil)
}

func (c *Client) Close() error { return nil }
