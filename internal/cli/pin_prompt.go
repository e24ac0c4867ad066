package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxPinLineLength = 64

var errStdinUnavailable = errors.New("stdin unavailable")

// PromptPin asks for a PIN on a terminal without echoing the digits.
func PromptPin(stdin *os.File, out io.Writer, label string) (string, error) {
	if stdin == nil {
		return "", errStdinUnavailable
	}

	fmt.Fprint(out, label)
	restore, err := disableEcho(stdin)
	if err != nil {
		fmt.Fprintln(out)
		return "", fmt.Errorf("disable echo: %w", err)
	}
	line, err := readLine(stdin)
	restore()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read pin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptNewPin asks twice and requires both answers to match.
func PromptNewPin(stdin *os.File, out io.Writer) (string, error) {
	first, err := PromptPin(stdin, out, "New PIN: ")
	if err != nil {
		return "", err
	}
	second, err := PromptPin(stdin, out, "Repeat PIN: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPinConfirmationMismatch
	}
	return first, nil
}

// readLine reads byte by byte so a second prompt on the same stdin sees the
// following line rather than whatever a buffered reader swallowed.
func readLine(in io.Reader) (string, error) {
	var (
		line strings.Builder
		one  [1]byte
	)
	for line.Len() <= maxPinLineLength {
		n, err := in.Read(one[:])
		if n == 1 {
			if one[0] == '\n' {
				return strings.TrimSuffix(line.String(), "\r"), nil
			}
			line.WriteByte(one[0])
		}
		if errors.Is(err, io.EOF) {
			return line.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("input line too long")
}
