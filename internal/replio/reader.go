// Package replio reads successive lines of grammar-exercising input for
// taulc's REPL, mirroring the teacher's direct-vs-readline command reader
// split so a non-tty session (piped input, test harnesses) degrades
// gracefully instead of requiring a real terminal.
package replio

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of REPL input at a time.
type LineReader interface {
	ReadLine() (string, error)
	SetPrompt(p string)
	Close() error
}

// direct reads raw lines from an io.Reader, for piped/non-tty input.
type direct struct {
	r      *bufio.Reader
	prompt string
}

// NewDirect wraps r for line-at-a-time reading without any line editing.
func NewDirect(r io.Reader) LineReader {
	return &direct{r: bufio.NewReader(r)}
}

func (d *direct) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *direct) SetPrompt(p string) { d.prompt = p }
func (d *direct) Close() error       { return nil }

// interactive reads lines via GNU-readline-style editing and history, for a
// real tty session.
type interactive struct {
	rl *readline.Instance
}

// NewInteractive starts a readline session prompting with prompt.
func NewInteractive(prompt string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return &interactive{rl: rl}, nil
}

func (i *interactive) ReadLine() (string, error) { return i.rl.Readline() }
func (i *interactive) SetPrompt(p string)        { i.rl.SetPrompt(p) }
func (i *interactive) Close() error              { return i.rl.Close() }
