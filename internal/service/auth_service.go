package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workshare/internal/domain"
	"workshare/internal/email"
	"workshare/internal/repository"
	"workshare/internal/token"
)

var (
	// ErrInvalidCredentials cubre tanto "no existe el usuario" como
	// "contraseña incorrecta"; las respuestas deben ser idénticas para
	// no permitir enumerar cuentas.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken cubre tokens ausentes, ajenos, malformados,
	// expirados o ya consumidos, sin distinguirlos hacia afuera.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailTaken indica signup con un email ya registrado.
	ErrEmailTaken = errors.New("email already taken")
	// ErrEmailSendFailure indica que el correo no pudo despacharse.
	ErrEmailSendFailure = errors.New("email send failed")
	// ErrInvalidEmail indica un email vacío tras normalizar.
	ErrInvalidEmail = errors.New("invalid email")
)

// AuthService coordina los flujos de autenticación: signup, login,
// verificación de email y reseteo de contraseña.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	sender  email.Sender
	baseURL string
	now     func() time.Time
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, sender email.Sender, baseURL string) *AuthService {
	return &AuthService{
		logger:  logger,
		users:   users,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// SignUp registra la cuenta, emite el token de verificación y envía el
// correo con el enlace. El email se respeta tal cual llega (el lookup
// es case-sensitive); sólo se recorta whitespace.
func (s *AuthService) SignUp(ctx context.Context, emailAddr, password string) error {
	emailAddr = strings.TrimSpace(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return ErrInvalidEmail
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	verifyTok, err := token.Issue(s.now())
	if err != nil {
		return err
	}

	user := domain.User{
		ID:                uuid.NewString(),
		Email:             emailAddr,
		PasswordHash:      hash,
		VerificationToken: verifyTok.String(),
		CreatedAt:         s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return err
	}

	// La fila ya está commiteada: un fallo de envío deja una cuenta
	// registrada sin correo de verificación, igual que el original.
	subject := "Verify your email"
	body := fmt.Sprintf(
		"Welcome! Open the link below to verify your address:\n%s/api/v1/verification?token=%s\nThe link expires in 10 minutes.\n",
		s.baseURL, verifyTok.String(),
	)
	if err := s.sender.Send(ctx, emailAddr, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Warn("send verification mail failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}
	return nil
}

// Login valida credenciales. Usuario inexistente y contraseña
// incorrecta colapsan en ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) error {
	emailAddr = strings.TrimSpace(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return ErrInvalidCredentials
	}

	hash, err := s.users.GetPasswordHash(ctx, emailAddr)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !verifyPassword(password, hash) {
		return ErrInvalidCredentials
	}
	return nil
}

// VerifyEmail consume el token de verificación de la cuenta asociada a
// la sesión activa. El token se compara contra el slot del propio
// email de la sesión, no contra un dueño resuelto aparte.
func (s *AuthService) VerifyEmail(ctx context.Context, sessionEmail, presented string) error {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return ErrInvalidToken
	}

	stored, err := s.users.GetVerificationToken(ctx, sessionEmail)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	if !token.Validate(presented, stored, s.now()) {
		return ErrInvalidToken
	}

	cleared, err := s.users.ClearVerificationToken(ctx, sessionEmail, presented)
	if err != nil {
		return err
	}
	if !cleared {
		// Una redención concurrente ya lo consumió.
		return ErrInvalidToken
	}
	return nil
}

// RequestPasswordReset emite un token de reseteo sin chequear antes si
// el email existe; la actualización del store es un no-op para
// direcciones desconocidas y la respuesta no varía.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return ErrInvalidEmail
	}

	resetTok, err := token.Issue(s.now())
	if err != nil {
		return err
	}
	if err := s.users.SetPasswordResetToken(ctx, emailAddr, resetTok.String()); err != nil {
		return err
	}

	subject := "Password reset"
	body := fmt.Sprintf(
		"A password reset was requested for this address. Open the link below to continue:\n%s/api/v1/password_reset?token=%s\nThe link expires in 10 minutes. If you did not request this, ignore this mail.\n",
		s.baseURL, resetTok.String(),
	)
	if err := s.sender.Send(ctx, emailAddr, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Warn("send reset mail failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}
	return nil
}

// CheckPasswordResetToken reporta si un token de reseteo sigue siendo
// redimible, sin mutar nada.
func (s *AuthService) CheckPasswordResetToken(ctx context.Context, presented string) error {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return ErrInvalidToken
	}
	if _, err := s.users.GetEmailByPasswordResetToken(ctx, presented); err != nil {
		if repository.IsNotFound(err) {
			return ErrInvalidToken
		}
		return err
	}
	// El lookup fue por igualdad exacta, así que el valor almacenado es
	// el presentado; queda chequear forma y expiración.
	if !token.Validate(presented, presented, s.now()) {
		return ErrInvalidToken
	}
	return nil
}

// CompletePasswordReset valida el token y reemplaza el hash en un solo
// UPDATE que además borra el token; cero filas afectadas es fallo, no
// éxito silencioso.
func (s *AuthService) CompletePasswordReset(ctx context.Context, presented, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return ErrInvalidToken
	}
	if err := s.CheckPasswordResetToken(ctx, presented); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.users.ResetPassword(ctx, presented, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrInvalidToken
	}
	return nil
}
