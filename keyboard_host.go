// keyboard_host.go - reads raw stdin on a goroutine and feeds bytes to the
// Keyboard device via the injection queue.
//
// Only instantiated from main.go / monitor.go for interactive use, never in
// tests: the core goroutine must stay the sole writer of machine state, so
// every byte read here crosses into the core via queue.Submit rather than
// touching the Keyboard directly.
package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// KeyboardHost reads raw stdin and submits each byte to a Keyboard through
// an InjectionQueue, so the core goroutine remains the only writer of
// machine state.
type KeyboardHost struct {
	kbd    *Keyboard
	queue  *InjectionQueue
	stopCh chan struct{}
	done   chan struct{}
	stopped sync.Once

	fd          int
	nonblockSet bool
	oldState    *term.State
}

// NewKeyboardHost creates a host adapter that reads stdin and latches keys
// on kbd via queue, which must be drained by the machine's core pump.
func NewKeyboardHost(kbd *Keyboard, queue *InjectionQueue) *KeyboardHost {
	return &KeyboardHost{
		kbd:    kbd,
		queue:  queue,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading in a
// goroutine. Call Stop to restore the terminal.
func (h *KeyboardHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyboard_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "keyboard_host: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				b := buf[0]
				if b == '\r' {
					b = '\n'
				}
				if b == 0x7F {
					b = 0x08
				}
				h.queue.Submit(func(m *Machine) {
					h.kbd.KeyDown(b)
				})
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// Stop terminates the stdin-reading goroutine and restores the terminal to
// its prior mode.
func (h *KeyboardHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
	}
}
