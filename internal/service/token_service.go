package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService emite y valida JWT firmados con HMAC-SHA256.
// El secreto es inmutable después de la construcción.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// TokenClaims duplica el email como claim propio además del subject, para
// que los consumidores puedan extraerlo sin asumir el layout de claims.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const defaultTokenTTL = 24 * time.Hour

var ErrTokenInvalid = errors.New("token invalid")

// NewTokenService crea el servicio con el secreto compartido (se recomiendan
// al menos 256 bits) y el TTL de los tokens. TTL <= 0 cae a 24 horas.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate emite un token firmado para el email: subject y claim email con el
// mismo valor, issued-at ahora y expiración a las 24 horas (o el TTL
// configurado).
func (s *TokenService) Generate(email string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate devuelve true si el token parsea, la firma coincide con el secreto
// y no está expirado. Cualquier falla interna se convierte en false: ningún
// error de parseo o criptografía escapa al caller.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parseVerified(tokenString)
	return err == nil
}

// ExtractEmail lee el claim email SIN verificar firma ni expiración.
// Contrato de uso: llamar Validate antes; un token no verificado no es
// confiable. VerifyAndExtract es la variante segura.
func (s *TokenService) ExtractEmail(tokenString string) (string, error) {
	var claims TokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

// VerifyAndExtract valida el token y devuelve el email en una sola operación,
// eliminando la ventana entre Validate y ExtractEmail.
func (s *TokenService) VerifyAndExtract(tokenString string) (string, bool) {
	claims, err := s.parseVerified(tokenString)
	if err != nil {
		return "", false
	}
	return claims.Email, true
}

func (s *TokenService) parseVerified(tokenString string) (TokenClaims, error) {
	if len(s.secret) == 0 {
		return TokenClaims{}, ErrTokenInvalid
	}
	var claims TokenClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return TokenClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
