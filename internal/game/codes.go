package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// GenerateJoinCode creates a random join code
func GenerateJoinCode() string {
	code := make([]byte, JoinCodeLength)
	for i := 0; i < JoinCodeLength; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(JoinCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = JoinCodeChars[rand.Intn(len(JoinCodeChars))]
			continue
		}
		code[i] = JoinCodeChars[n.Int64()]
	}
	return string(code)
}

// UniqueJoinCode generates a join code not yet present according to exists
func UniqueJoinCode(exists func(string) bool) string {
	for {
		code := GenerateJoinCode()
		if !exists(code) {
			return code
		}
	}
}
