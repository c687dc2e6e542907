// Package encid encodes and decodes the opaque employee identifiers the
// payrun back-end embeds in links. An identifier is the decimal employee
// ID encrypted with AES-256-CBC, PKCS#7 padded, and rendered in base62.
package encid

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"math/big"
	"strings"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Key material shared with the payrun back-end for link identifiers.
const (
	DefaultKey = "TrtgdhYvbfdasmyghRchprcsvFsngabV"
	DefaultIV  = "6581256789036528"
)

// ResolveUserID accepts either a plain numeric employee ID or the
// encrypted identifier from a payrun link and returns the numeric form.
func ResolveUserID(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("employee identifier is empty")
	}
	if isNumeric(raw) {
		return raw, nil
	}
	codec, err := NewCodec(DefaultKey, DefaultIV)
	if err != nil {
		return "", err
	}
	id, err := codec.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode employee identifier: %w", err)
	}
	if !isNumeric(id) {
		return "", fmt.Errorf("decoded identifier %q is not numeric", id)
	}
	return id, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Codec holds the shared key material. The key must be 32 bytes and the
// IV 16 bytes.
type Codec struct {
	key []byte
	iv  []byte
}

// NewCodec validates the key material and returns a codec.
func NewCodec(key, iv string) (*Codec, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	return &Codec{key: []byte(key), iv: []byte(iv)}, nil
}

// Encode encrypts a plaintext identifier into its base62 link form.
func (c *Codec) Encode(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)

	return toBase62(out), nil
}

// Decode reverses Encode. It fails on malformed base62, ciphertext that
// is not block aligned, or invalid padding.
func (c *Codec) Decode(encoded string) (string, error) {
	raw, err := fromBase62(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(raw))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, raw)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-pad], nil
}

func toBase62(data []byte) string {
	value := new(big.Int).SetBytes(data)
	if value.Sign() == 0 {
		return "0"
	}
	base := big.NewInt(62)
	rem := new(big.Int)
	var sb []byte
	for value.Sign() > 0 {
		value.DivMod(value, base, rem)
		sb = append(sb, base62Chars[rem.Int64()])
	}
	for i, j := 0, len(sb)-1; i < j; i, j = i+1, j-1 {
		sb[i], sb[j] = sb[j], sb[i]
	}
	return string(sb)
}

// fromBase62 restores the ciphertext bytes. The numeric round trip
// drops leading zero bytes, so the result is padded back out to the
// next block boundary.
func fromBase62(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty identifier")
	}
	value := new(big.Int)
	base := big.NewInt(62)
	for _, r := range s {
		idx := strings.IndexRune(base62Chars, r)
		if idx < 0 {
			return nil, fmt.Errorf("invalid base62 character %q", r)
		}
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(idx)))
	}

	raw := value.Bytes()
	if pad := len(raw) % aes.BlockSize; pad != 0 {
		padded := make([]byte, len(raw)+aes.BlockSize-pad)
		copy(padded[aes.BlockSize-pad:], raw)
		raw = padded
	}
	return raw, nil
}
