package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher encapsula el hashing bcrypt de passwords.
// Cada hash lleva su propio salt aleatorio, por lo que el mismo plaintext
// produce resultados distintos en cada llamada.
type PasswordHasher struct {
	cost int
}

var ErrEmptyPassword = errors.New("password must not be empty")

// NewPasswordHasher crea un hasher con el cost indicado. Valores fuera del
// rango soportado por bcrypt caen al default (10).
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash genera el hash bcrypt del plaintext. Falla con ErrEmptyPassword si el
// plaintext está vacío: nunca se persiste un hash de password vacío.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify compara plaintext contra un hash almacenado. Devuelve false ante
// cualquier mismatch, hash malformado o plaintext vacío; nunca lanza.
func (h *PasswordHasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
