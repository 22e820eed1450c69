package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// argonConfig is shared by every hash so stored credentials stay
// comparable; the parameters travel inside the encoded string anyway.
var argonConfig = argon2.DefaultConfig()

// HashPassword returns the argon2id hash in PHC encoded form, salt
// included, ready to store as-is.
func HashPassword(password string) (string, error) {
	encoded, err := argonConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks the password against a stored encoded hash. A
// mismatch is (false, nil); err is reserved for malformed hashes.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
