// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

const interactiveSupported = true

// RunInteractive starts the prepared command attached to a PTY, wires the
// caller's terminal to it in raw mode, and blocks until the child exits.
// Window resizes are forwarded for the lifetime of the session.
func RunInteractive(prepared *PreparedCommand) *Result {
	if prepared.Cleanup != nil {
		defer prepared.Cleanup()
	}

	ptmx, err := pty.Start(prepared.Cmd)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to start PTY: %w", err))
	}
	defer func() { _ = ptmx.Close() }()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winch <- syscall.SIGWINCH
	defer func() { signal.Stop(winch); close(winch) }()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()
	}

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()
	_, _ = io.Copy(os.Stdout, ptmx)

	if err := prepared.Cmd.Wait(); err != nil {
		if exitErr, ok := err.(interface{ ExitCode() int }); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("interactive session failed: %w", err))
	}
	return NewSuccessResult()
}
