package employees

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const matriculePrefix = "EMP"

// GenerateMatricule returns a candidate business id of the form EMPxxxxx.
// Callers must still check uniqueness against the store.
func GenerateMatricule() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return matriculePrefix + "00000"
	}
	return fmt.Sprintf("%s%05d", matriculePrefix, n.Int64())
}
