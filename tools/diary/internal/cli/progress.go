package cli

import (
	"fmt"
	"time"
)

var spinnerFrames = []string{"⣷", "⣯", "⣟", "⡿", "⢿", "⣻", "⣽", "⣾"}

// progress is the state of the active progress line.
type progress struct {
	msg   string
	frame int
	done  chan struct{}
}

// StartProgress shows message behind a spinner until StopProgress is called
// or another message is printed.
func (c *Console) StartProgress(message string) {
	if c.isQuiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopProgressLocked()

	p := &progress{msg: message, done: make(chan struct{})}
	c.progress = p
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			c.mu.Lock()
			if c.progress != p {
				c.mu.Unlock()
				return
			}
			fmt.Fprintf(c.out, "\r\033[K%s %s", c.Lime.Sprint(spinnerFrames[p.frame]), p.msg)
			p.frame = (p.frame + 1) % len(spinnerFrames)
			c.mu.Unlock()
			select {
			case <-ticker.C:
			case <-p.done:
				return
			}
		}
	}()
}

// UpdateProgress replaces the message of the active progress line.
func (c *Console) UpdateProgress(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.progress != nil {
		c.progress.msg = message
	}
}

// StopProgress removes the progress line.
func (c *Console) StopProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopProgressLocked()
}

// stopProgressLocked requires c.mu.
func (c *Console) stopProgressLocked() {
	if c.progress == nil {
		return
	}
	close(c.progress.done)
	c.progress = nil
	fmt.Fprint(c.out, "\r\033[K")
}
