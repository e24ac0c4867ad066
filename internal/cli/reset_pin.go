package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/cyclecast/internal/security"
	"github.com/terraincognita07/cyclecast/internal/services"
)

var ErrPinConfirmationMismatch = errors.New("pin confirmation does not match")

// RunResetPinCommand replaces the PIN. An empty pin generates a temporary
// one and prints it.
func RunResetPinCommand(preferences services.PreferencesStore, out io.Writer, pin string) error {
	pin = strings.TrimSpace(pin)
	temporary := pin == ""
	if temporary {
		generated, err := generateTemporaryPin()
		if err != nil {
			return fmt.Errorf("generate temporary pin: %w", err)
		}
		pin = generated
	}

	pinService := services.NewPinService(preferences, nil)
	if _, err := pinService.SetPin(pin); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}

	fmt.Fprintln(out, "PIN reset successful")
	if temporary {
		fmt.Fprintf(out, "Temporary PIN: %s\n", pin)
		fmt.Fprintln(out, "Change it from the app after unlocking.")
	}
	return nil
}

func RunDisablePinCommand(preferences services.PreferencesStore, out io.Writer) error {
	if err := services.NewPinService(preferences, nil).DisablePin(); err != nil {
		return fmt.Errorf("disable pin: %w", err)
	}
	fmt.Fprintln(out, "PIN lock disabled")
	return nil
}

func generateTemporaryPin() (string, error) {
	for {
		pin, err := security.RandomDigits(services.PinLength)
		if err != nil {
			return "", err
		}
		if !security.IsGuessablePin(pin) {
			return pin, nil
		}
	}
}
