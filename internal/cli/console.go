package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// clearSequence moves the cursor home and clears the screen
const clearSequence = "\033[H\033[2J"

// TerminalConsole implements game.Console over a reader and writer
type TerminalConsole struct {
	in       *bufio.Reader
	out      io.Writer
	terminal bool
}

// NewConsole creates a console. Screen clearing is only emitted when out is
// a terminal, so piped output stays clean.
func NewConsole(in io.Reader, out io.Writer) *TerminalConsole {
	return &TerminalConsole{
		in:       bufio.NewReader(in),
		out:      out,
		terminal: isTerminal(out),
	}
}

// ReadLine returns the next line without its terminator. A final line with
// no newline is returned before io.EOF.
func (c *TerminalConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Write writes text as is
func (c *TerminalConsole) Write(text string) error {
	_, err := io.WriteString(c.out, text)
	return err
}

// Clear clears the screen on terminals and does nothing otherwise
func (c *TerminalConsole) Clear() error {
	if !c.terminal {
		return nil
	}
	return c.Write(clearSequence)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
