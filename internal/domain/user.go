package domain

import "time"

// User representa la cuenta de un usuario del servicio.
//
// El slot VerificationToken vacío es la única señal de que el correo
// fue verificado; no existe un flag booleano aparte.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	VerificationToken  string    `json:"-"`
	PasswordResetToken string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
}
