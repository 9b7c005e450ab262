package fhe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxfi/parity/fhe"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := fhe.Encrypt(3.5)
	assert.InDelta(t, 3.5, fhe.Decrypt(c), 1e-9)
}

func TestAdd(t *testing.T) {
	a := fhe.Encrypt(2.0)
	b := fhe.Encrypt(4.5)
	sum := fhe.Add(a, b)
	assert.InDelta(t, 6.5, fhe.Decrypt(sum), 1e-9)
}

func TestMul(t *testing.T) {
	a := fhe.Encrypt(3.0)
	scaled := fhe.Mul(a, 2.0)
	assert.InDelta(t, 6.0, fhe.Decrypt(scaled), 1e-9)
}

func TestDecryptMalformedBoxIsZero(t *testing.T) {
	assert.Equal(t, 0.0, fhe.Decrypt(fhe.Ciphertext{}))
}
