package crypto

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes a numeric PIN using bcrypt
func HashPIN(pin int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strconv.Itoa(pin)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPIN compares a numeric PIN against its bcrypt hash
func CheckPIN(pin int, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strconv.Itoa(pin)))
	return err == nil
}
