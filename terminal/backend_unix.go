//go:build unix

package terminal

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"celina/cerrors"
	"celina/geometry"
	"celina/log"
)

// posixBackend is the only Backend implementation celina ships. It is
// grounded directly on two pack references: the teacher's term.go for
// term.MakeRaw/term.Restore, and
// lixenwraith-vi-fighter/terminal/backend_unix.go for driving
// unix.Poll/unix.IoctlGetWinsize/unix.Read instead of hand-rolled
// syscalls.
type posixBackend struct {
	inFd  int
	outFd int

	oldState *term.State
}

// NewPOSIXBackend constructs a Backend wired to stdin/stdout.
func NewPOSIXBackend() Backend {
	return &posixBackend{
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *posixBackend) EnableRawMode() error {
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return cerrors.Wrap(cerrors.KindTerminal, cerrors.SubTerminalConfig, "enable raw mode", err)
	}
	b.oldState = old
	return nil
}

func (b *posixBackend) DisableRawMode() error {
	if b.oldState == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldState)
	b.oldState = nil
	if err != nil {
		return cerrors.Wrap(cerrors.KindTerminal, cerrors.SubTerminalConfig, "restore terminal mode", err)
	}
	return nil
}

func (b *posixBackend) Size() (geometry.Size, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		log.Warn("terminal size ioctl failed, falling back to 80x24", "error", err)
		return geometry.Size{Width: 80, Height: 24}, nil
	}
	if ws.Col == 0 || ws.Row == 0 {
		return geometry.Size{Width: 80, Height: 24}, nil
	}
	return geometry.Size{Width: int(ws.Col), Height: int(ws.Row)}, nil
}

func (b *posixBackend) PollReady(timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return false, cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "poll stdin", err)
		}
		return n > 0, nil
	}
}

func (b *posixBackend) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "blocking read", err)
		}
		if n == 0 {
			return 0, cerrors.New(cerrors.KindIO, cerrors.SubIORead, "stdin closed")
		}
		return buf[0], nil
	}
}

func (b *posixBackend) TryReadByte() (byte, bool, error) {
	scope, err := EnterNonblocking(b.inFd)
	if err != nil {
		return 0, false, cerrors.Wrap(cerrors.KindSystem, cerrors.SubSystemSyscall, "enter nonblocking mode", err)
	}
	defer scope.Exit()

	var buf [1]byte
	n, err := unix.Read(b.inFd, buf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return 0, false, nil
		}
		return 0, false, cerrors.Wrap(cerrors.KindIO, cerrors.SubIORead, "nonblocking read", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// writeRetryLimit bounds the number of EAGAIN/EINTR retries in Write so a
// persistently broken fd aborts instead of spinning forever.
const writeRetryLimit = 1000

const writeRetryBackoff = time.Millisecond

func (b *posixBackend) Write(p []byte) error {
	total := 0
	retries := 0
	for total < len(p) {
		n, err := unix.Write(b.outFd, p[total:])
		if err != nil {
			if err == unix.EINTR {
				retries++
				if retries > writeRetryLimit {
					return cerrors.Wrap(cerrors.KindIO, cerrors.SubIOWrite, "write retry limit exceeded (EINTR)", err)
				}
				continue
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				retries++
				if retries > writeRetryLimit {
					return cerrors.Wrap(cerrors.KindIO, cerrors.SubIOWrite, "write retry limit exceeded (EAGAIN)", err)
				}
				time.Sleep(writeRetryBackoff)
				continue
			}
			return cerrors.Wrap(cerrors.KindIO, cerrors.SubIOWrite, "write", err)
		}
		total += n
	}
	return nil
}
