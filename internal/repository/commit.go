package repository

import "context"

// Commit is the eventual outcome of a write whose local effect is already
// visible. It resolves exactly once.
type Commit struct {
	done chan struct{}
	err  error
}

func newCommit() *Commit {
	return &Commit{done: make(chan struct{})}
}

// Resolved returns a commit that has already finished with err.
func Resolved(err error) *Commit {
	c := newCommit()
	c.resolve(err)
	return c
}

func (c *Commit) resolve(err error) {
	c.err = err
	close(c.done)
}

// Done is closed once the outcome is known.
func (c *Commit) Done() <-chan struct{} {
	return c.done
}

// Err returns the outcome, or nil while the commit is still in flight.
func (c *Commit) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the commit resolves or ctx ends. A ctx error means the
// outcome is still unknown, not that the write failed.
func (c *Commit) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
