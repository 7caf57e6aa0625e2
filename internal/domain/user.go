package domain

import "time"

// User representa una cuenta registrada en el directorio.
// El ID lo asigna el servicio de autenticación al registrar, nunca el storage.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phones       []Phone    `json:"phones,omitempty"`
	Created      time.Time  `json:"created"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Active       bool       `json:"active"`
}

// Phone es un value object sin identidad propia: vive y muere con su User.
type Phone struct {
	Number      int64  `json:"number"`
	CityCode    int32  `json:"city_code"`
	CountryCode string `json:"country_code"`
}
