package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader is the console's source of input lines. It returns io.EOF when
// input ends.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// NewLineReader picks readline for an interactive terminal and a plain
// line scanner otherwise (pipes, files, tests)
func NewLineReader(in *os.File, out io.Writer) (LineReader, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return NewScannerReader(in, out), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &readlineReader{rl}, nil
}

type readlineReader struct {
	*readline.Instance
}

// Readline maps Ctrl-C to end of input
func (r *readlineReader) Readline() (string, error) {
	line, err := r.Instance.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

// ScannerReader reads lines from any io.Reader, echoing the prompt to out
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  "> ",
	}
}

func (s *ScannerReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *ScannerReader) Readline() (string, error) {
	fmt.Fprint(s.out, s.prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

func (s *ScannerReader) Close() error {
	return nil
}
