package validation

import "regexp"

// Reglas de formato para registro: el email sigue el patrón clásico
// local@dominio.tld y el password es alfanumérico de 8 a 12 caracteres.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	passwordMinLen = 8
	passwordMaxLen = 12
)

// IsValidEmail valida el formato del email. Es validación sintáctica
// solamente: no verifica existencia de la cuenta ni registros MX.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidPassword valida la política de passwords: 8 a 12 caracteres,
// exactamente una mayúscula, al menos dos dígitos, al menos una minúscula
// y únicamente caracteres alfanuméricos ASCII.
func IsValidPassword(password string) bool {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return false
	}
	for i := 0; i < len(password); i++ {
		if !isASCIIAlphanumeric(password[i]) {
			return false
		}
	}
	if CountUppercase(password) != 1 {
		return false
	}
	if CountDigits(password) < 2 {
		return false
	}
	return CountLowercase(password) >= 1
}

// CountUppercase cuenta letras mayúsculas ASCII. Devuelve 0 para "".
func CountUppercase(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			count++
		}
	}
	return count
}

// CountDigits cuenta dígitos ASCII. Devuelve 0 para "".
func CountDigits(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			count++
		}
	}
	return count
}

// CountLowercase cuenta letras minúsculas ASCII. Devuelve 0 para "".
func CountLowercase(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			count++
		}
	}
	return count
}

func isASCIIAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
