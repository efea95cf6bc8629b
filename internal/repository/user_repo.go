package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshare/internal/domain"
)

// ErrDuplicateEmail indica que el email ya está registrado. La
// restricción UNIQUE de la tabla es el único mecanismo contra la
// carrera de signups concurrentes; no hay pre-chequeo bajo lock.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetPasswordHash(ctx context.Context, email string) (string, error)
	GetVerificationToken(ctx context.Context, email string) (string, error)
	ClearVerificationToken(ctx context.Context, email, tok string) (bool, error)
	SetPasswordResetToken(ctx context.Context, email, tok string) error
	GetEmailByPasswordResetToken(ctx context.Context, tok string) (string, error)
	ResetPassword(ctx context.Context, tok, newHash string) (bool, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const uniqueViolation = "23505"

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, verification_token, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.VerificationToken,
		user.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PgUserRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	const query = `
		SELECT password_hash
		FROM users
		WHERE email = $1
	`
	var hash string
	err := r.pool.QueryRow(ctx, query, email).Scan(&hash)
	return hash, err
}

func (r *PgUserRepository) GetVerificationToken(ctx context.Context, email string) (string, error) {
	const query = `
		SELECT COALESCE(verification_token, '')
		FROM users
		WHERE email = $1
	`
	var tok string
	err := r.pool.QueryRow(ctx, query, email).Scan(&tok)
	return tok, err
}

// ClearVerificationToken borra el token sólo si sigue siendo el valor
// almacenado para ese email. Devuelve false cuando no afectó filas, de
// modo que una segunda redención concurrente observa "ausente" y falla.
func (r *PgUserRepository) ClearVerificationToken(ctx context.Context, email, tok string) (bool, error) {
	const query = `
		UPDATE users
		SET verification_token = NULL
		WHERE email = $1 AND verification_token = $2
	`
	cmd, err := r.pool.Exec(ctx, query, email, tok)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// SetPasswordResetToken es un no-op cuando el email no existe: cero
// filas afectadas no es error, para no filtrar existencia de cuentas.
func (r *PgUserRepository) SetPasswordResetToken(ctx context.Context, email, tok string) error {
	const query = `
		UPDATE users
		SET password_reset_token = $2
		WHERE email = $1
	`
	_, err := r.pool.Exec(ctx, query, email, tok)
	return err
}

func (r *PgUserRepository) GetEmailByPasswordResetToken(ctx context.Context, tok string) (string, error) {
	const query = `
		SELECT email
		FROM users
		WHERE password_reset_token = $1
	`
	var email string
	err := r.pool.QueryRow(ctx, query, tok).Scan(&email)
	return email, err
}

// ResetPassword reemplaza el hash y borra el token en un solo UPDATE
// atómico keyed por el token, cerrando la ventana check/use entre
// redenciones concurrentes.
func (r *PgUserRepository) ResetPassword(ctx context.Context, tok, newHash string) (bool, error) {
	const query = `
		UPDATE users
		SET password_hash = $2, password_reset_token = NULL
		WHERE password_reset_token = $1
	`
	cmd, err := r.pool.Exec(ctx, query, tok, newHash)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// IsNotFound ayuda a los servicios a distinguir "sin filas" de fallas
// reales del store.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
