package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// Confirmer approves a destructive action before it runs. The interactive
// implementation asks on the terminal; --yes swaps in one that always
// approves.
type Confirmer interface {
	Confirm(prompt string) bool
}

type terminalConfirmer struct {
	in io.Reader
}

func (t terminalConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	input, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}

type assumeYes struct{}

func (assumeYes) Confirm(string) bool { return true }

// newConfirmer selects the confirmation behavior for the --yes flag.
func newConfirmer(yes bool) Confirmer {
	if yes {
		return assumeYes{}
	}
	return terminalConfirmer{in: os.Stdin}
}
