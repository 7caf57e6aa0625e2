package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bci-auth/internal/domain"
)

// UserRepository define el contrato del directorio de usuarios, indexado por
// email como clave única.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user domain.User) error
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created, last_login, active
		FROM users
		WHERE email = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Created,
		&u.LastLogin,
		&u.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}

	phones, err := r.phonesByUser(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.Phones = phones
	return u, nil
}

func (r *PgUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save hace upsert del usuario y reescribe sus teléfonos preservando el
// orden, todo dentro de una transacción. Una violación de unicidad del email
// se traduce a ErrEmailTaken.
func (r *PgUserRepository) Save(ctx context.Context, user domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const upsert = `
		INSERT INTO users (id, name, email, password_hash, created, last_login, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			last_login = EXCLUDED.last_login,
			active = EXCLUDED.active
	`
	_, err = tx.Exec(ctx, upsert,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Created,
		user.LastLogin,
		user.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM phones WHERE user_id = $1`, user.ID); err != nil {
		return err
	}
	const insertPhone = `
		INSERT INTO phones (user_id, position, number, city_code, country_code)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, phone := range user.Phones {
		if _, err := tx.Exec(ctx, insertPhone, user.ID, i, phone.Number, phone.CityCode, phone.CountryCode); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgUserRepository) phonesByUser(ctx context.Context, userID string) ([]domain.Phone, error) {
	const query = `
		SELECT number, city_code, country_code
		FROM phones
		WHERE user_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []domain.Phone
	for rows.Next() {
		var p domain.Phone
		if err := rows.Scan(&p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
