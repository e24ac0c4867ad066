package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

var errInvalidDigitCount = errors.New("digit count must be positive")

var ten = big.NewInt(10)

// RandomDigits returns count uniformly distributed decimal digits from crypto/rand.
func RandomDigits(count int) (string, error) {
	if count <= 0 {
		return "", errInvalidDigitCount
	}

	digits := make([]byte, count)
	for index := range digits {
		digit, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		digits[index] = byte('0' + digit.Int64())
	}
	return string(digits), nil
}

// IsGuessablePin reports PINs made of one repeated digit or a straight
// ascending or descending run, such as 7777, 1234 or 9876.
func IsGuessablePin(pin string) bool {
	if len(pin) < 2 {
		return true
	}

	repeated, ascending, descending := true, true, true
	for index := 1; index < len(pin); index++ {
		step := int(pin[index]) - int(pin[index-1])
		repeated = repeated && step == 0
		ascending = ascending && step == 1
		descending = descending && step == -1
	}
	return repeated || ascending || descending
}
