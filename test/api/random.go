package api

import (
	"fmt"
	"math/rand/v2"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomString(length int) string {
	out := make([]byte, length)

	for i := range out {
		out[i] = alphanumeric[rand.IntN(len(alphanumeric))] //nolint:gosec // test data, not secrets
	}

	return string(out)
}

// GenerateRandomString returns length characters drawn uniformly from [A-Za-z0-9].
func GenerateRandomString(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: length must be positive, got %d", ErrInvalidArgument, length)
	}

	return randomString(length), nil
}

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, randomString(8))
}

func GenerateTestID() string {
	return generateRandomName("test")
}
