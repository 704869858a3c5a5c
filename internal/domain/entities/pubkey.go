package entities

import "github.com/mr-tron/base58"

const publicKeyLength = 32

// IsPublicKey reports whether key is a base58 encoded 32 byte public key
func IsPublicKey(key string) bool {
	decoded, err := base58.Decode(key)
	return err == nil && len(decoded) == publicKeyLength
}
