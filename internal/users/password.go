package users

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the bcrypt input limit. It counts bytes, so a
// password of multibyte runes reaches it with fewer characters.
const MaxPasswordBytes = 72

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
