package terminal

import "golang.org/x/sys/unix"

// NonblockingScope toggles O_NONBLOCK on a file descriptor for the
// duration of its lifetime and restores the original flags on Exit.
// spec.md §5 requires stdin's O_NONBLOCK flag to be "toggled transiently
// and always restored" and asks for exactly this scoped-helper shape so
// no caller leaves stdin in a mode the application didn't choose.
type NonblockingScope struct {
	fd        int
	prevFlags int
	entered   bool
}

// EnterNonblocking sets O_NONBLOCK on fd, returning a scope that restores
// the previous flags when Exit is called.
func EnterNonblocking(fd int) (*NonblockingScope, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return nil, err
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		return nil, err
	}
	return &NonblockingScope{fd: fd, prevFlags: flags, entered: true}, nil
}

// Exit restores the file descriptor's original flags. Safe to call more
// than once; only the first call has an effect.
func (s *NonblockingScope) Exit() error {
	if s == nil || !s.entered {
		return nil
	}
	s.entered = false
	_, err := unix.FcntlInt(uintptr(s.fd), unix.F_SETFL, s.prevFlags)
	return err
}
