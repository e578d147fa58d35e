// Package secrets encrypts credentials at rest using fernet tokens.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Codec encrypts and decrypts short secrets with a single fernet key.
type Codec struct {
	key *fernet.Key
}

// NewCodec creates a Codec from a base64-encoded fernet key.
func NewCodec(encodedKey string) (*Codec, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Codec{key: key}, nil
}

// Encrypt returns a signed fernet token for the plaintext.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens never expire here;
// rotation happens by overwriting the stored value.
func (c *Codec) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token or wrong key")
	}
	return string(plaintext), nil
}
