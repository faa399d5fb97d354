package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard copies text using platform clipboard utilities.
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(*exec.Cmd) error
}

// NewClipboard builds the clipboard helper for the current platform.
func NewClipboard() *Clipboard {
	return &Clipboard{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      (*exec.Cmd).Run,
	}
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	cmd, err := c.command()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return c.run(cmd)
}

func (c *Clipboard) command() (*exec.Cmd, error) {
	switch c.goos {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		if _, err := c.lookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy"), nil
		}
		if _, err := c.lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		return nil, errors.New("clipboard utilities not found (install wl-copy or xclip)")
	default:
		return nil, fmt.Errorf("clipboard not supported on %s", c.goos)
	}
}
