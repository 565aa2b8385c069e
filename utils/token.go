package utils

import (
	"fmt"
	"math/rand"
)

// GenerateOTPCode returns a random 6-digit login code.
func GenerateOTPCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
