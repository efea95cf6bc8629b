package service

import "golang.org/x/crypto/bcrypt"

// El costo quedó en 8 como en el sistema original; es bajo para un
// hash de contraseñas y está pendiente subirlo junto con un re-hash
// perezoso en login.
const bcryptCost = 8

func hashPassword(plaintext string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// verifyPassword devuelve false ante cualquier mismatch o hash
// malformado; nunca distingue el motivo.
func verifyPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
