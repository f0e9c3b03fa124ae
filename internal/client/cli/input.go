package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword. Tests replace it to
// avoid touching the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// GetPIN prints a prompt to w and reads a PIN from the terminal without
// echo. A newline is printed after the read to keep the output tidy.
func GetPIN(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pin, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pin), nil
}
