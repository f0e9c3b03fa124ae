package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/lovelab-app/lovelab/internal/common"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// deriveKey stretches a user PIN into an AES-256 key with Argon2id.
// The parameters match a single-shot interactive use: one pass over 64 MiB
// with four lanes.
func deriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// encryptText seals plaintext with AES-256-GCM under a key derived from
// password. The returned blob is salt || nonce || ciphertext; salt and nonce
// are freshly random per call.
func encryptText(plaintext []byte, password string) ([]byte, error) {
	salt := common.GenerateRandByteArray(saltSize)
	nonce := common.GenerateRandByteArray(nonceSize)

	block, err := aes.NewCipher(deriveKey([]byte(password), salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// decryptText opens a blob produced by encryptText. A blob too short to
// carry salt, nonce and at least the GCM tag is malformed; a GCM open
// failure means the password is wrong or the ciphertext is corrupted;
// GCM cannot tell these apart, so both report an incorrect password.
func decryptText(blob []byte, password string) ([]byte, error) {
	if len(blob) < saltSize+nonceSize {
		return nil, fmt.Errorf("%w: ciphertext truncated", common.ErrMalformedToken)
	}
	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	block, err := aes.NewCipher(deriveKey([]byte(password), salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrIncorrectPassword
	}
	return plaintext, nil
}
