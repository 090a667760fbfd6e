package secrets

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var encoding = base64.RawURLEncoding

// EncryptJSON serializes v to JSON and encrypts it under key.
// Returns base64url ciphertext: iv + aes-cbc(pkcs7(json)).
func EncryptJSON(key Key, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	ciphertext, err := EncryptBytes(key, data)
	if err != nil {
		return "", err
	}
	return encoding.EncodeToString(ciphertext), nil
}

// DecryptJSON decrypts ciphertext produced by EncryptJSON into dst.
// Any failure, including an empty plaintext, yields ErrDecryptionFailed.
func DecryptJSON(key Key, ciphertext string, dst any) error {
	raw, err := encoding.DecodeString(ciphertext)
	if err != nil {
		return ErrDecryptionFailed
	}

	plaintext, err := DecryptBytes(key, raw)
	if err != nil {
		return ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		return ErrDecryptionFailed
	}
	return nil
}

// EncryptBytes encrypts data with AES-256-CBC and PKCS#7 padding.
// Returns ciphertext in format: iv + encrypted blocks.
func EncryptBytes(key Key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	padded := pkcs7Pad(data, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))

	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// DecryptBytes reverses EncryptBytes.
func DecryptBytes(key Key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2*aes.BlockSize || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	iv, body := ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil || len(plain) == 0 {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryptionFailed
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrDecryptionFailed
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrDecryptionFailed
		}
	}
	return data[:len(data)-n], nil
}
