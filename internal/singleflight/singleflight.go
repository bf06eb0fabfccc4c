// Package singleflight provides a duplicate function call suppression mechanism
package singleflight

import (
	"context"
	"sync"
)

// call represents an in-flight or completed DoChan call
type call[T any] struct {
	done chan struct{} // closed when val and err are set
	val  T
	err  error
	dups int
}

// Group represents a class of work and forms a namespace in which
// units of work can be executed with duplicate suppression.
type Group[T any] struct {
	mu sync.Mutex          // protects m
	m  map[string]*call[T] // lazily initialized
}

// Result holds the results of a DoChan call
type Result[T any] struct {
	Val    T
	Err    error
	Shared bool // whether the result is being shared with other callers
}

// start registers key or joins the call already running for it
func (g *Group[T]) start(key string) (c *call[T], leader bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.m == nil {
		g.m = make(map[string]*call[T])
	}
	if c, ok := g.m[key]; ok {
		c.dups++
		return c, false
	}
	c = &call[T]{done: make(chan struct{})}
	g.m[key] = c
	return c, true
}

func (g *Group[T]) run(key string, c *call[T], fn func() (T, error)) {
	defer func() {
		g.mu.Lock()
		delete(g.m, key)
		g.mu.Unlock()
		close(c.done)
	}()
	c.val, c.err = fn()
}

// DoContext executes fn, making sure that only one execution is in flight for
// a given key at a time; duplicate callers wait for and share its result.
// It stops waiting when ctx is done. The function keeps running for the other
// callers.
func (g *Group[T]) DoContext(ctx context.Context, key string, fn func() (T, error)) (v T, err error, shared bool) {
	select {
	case res := <-g.DoChan(key, fn):
		return res.Val, res.Err, res.Shared
	case <-ctx.Done():
		return v, ctx.Err(), false
	}
}

// DoChan is like DoContext but returns a channel that will receive the
// results when they are ready.
func (g *Group[T]) DoChan(key string, fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	c, leader := g.start(key)
	if leader {
		go g.run(key, c, fn)
	}
	go func() {
		<-c.done
		ch <- Result[T]{Val: c.val, Err: c.err, Shared: !leader || c.dups > 0}
	}()
	return ch
}
