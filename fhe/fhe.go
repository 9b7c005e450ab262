// Package fhe provides a placeholder encrypted-scalar box standing in for
// a real homomorphic encryption backend. It is additively and
// multiplicatively "homomorphic" only by decrypting, operating in the
// clear, and re-encrypting — a seam meant to be replaced by a real FHE
// library without touching any caller, not a guarantee of confidentiality.
package fhe

import (
	"fmt"
)

// Ciphertext is an opaque box around a single float64.
type Ciphertext struct {
	box string
}

// Encrypt boxes plaintext.
func Encrypt(plaintext float64) Ciphertext {
	return Ciphertext{box: fmt.Sprintf("ENC(%.9f)", plaintext)}
}

// Decrypt unboxes a Ciphertext. An empty or malformed box decrypts to 0.
func Decrypt(c Ciphertext) float64 {
	var value float64
	if _, err := fmt.Sscanf(c.box, "ENC(%f)", &value); err != nil {
		return 0
	}
	return value
}

// Add returns the encryption of the sum of a and b's plaintexts, via the
// decrypt-operate-reencrypt oracle.
func Add(a, b Ciphertext) Ciphertext {
	return Encrypt(Decrypt(a) + Decrypt(b))
}

// Mul returns the encryption of a's plaintext scaled by scalar.
func Mul(a Ciphertext, scalar float64) Ciphertext {
	return Encrypt(Decrypt(a) * scalar)
}
