package terminal

import "celina/geometry"

// Backend abstracts the POSIX terminal primitives celina needs: raw mode,
// size queries, writing, and polling stdin for readiness. spec.md §1's
// Non-goals exclude Windows-console support, so only a POSIX
// implementation is provided (backend_unix.go); the interface itself is
// platform-neutral so higher layers never import syscall-specific types.
type Backend interface {
	// EnableRawMode puts the terminal into raw mode, saving whatever
	// state is needed to restore it later.
	EnableRawMode() error
	// DisableRawMode restores the terminal mode saved by EnableRawMode.
	// Safe to call even if EnableRawMode was never called or failed.
	DisableRawMode() error

	// Size returns the current terminal size in cells.
	Size() (geometry.Size, error)

	// PollReady blocks up to timeoutMs milliseconds waiting for stdin to
	// have data ready to read, returning true if data is available. A
	// timeoutMs of 0 polls without blocking.
	PollReady(timeoutMs int) (bool, error)

	// ReadByte blocks until one byte is available on stdin.
	ReadByte() (byte, error)

	// TryReadByte attempts to read one byte without blocking. The second
	// return value is false when no byte was currently available.
	TryReadByte() (byte, bool, error)

	// Write writes p to stdout with the robust retry policy from
	// spec.md §4.2: partial writes loop, EINTR/EAGAIN retry with bounded
	// attempts and a short backoff.
	Write(p []byte) error
}
