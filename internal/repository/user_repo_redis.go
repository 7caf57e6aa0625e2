package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bci-auth/internal/domain"
)

// redisUserClient es el subconjunto de comandos de go-redis que usa el
// repositorio. Mantenerlo angosto permite mockearlo en tests.
type redisUserClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisUserRepository implementa UserRepository sobre redis, con el registro
// completo serializado como JSON bajo la clave user:<email>.
type RedisUserRepository struct {
	client redisUserClient
	prefix string
}

type redisUserRecord struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"password_hash"`
	Phones       []domain.Phone `json:"phones,omitempty"`
	Created      time.Time      `json:"created"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	Active       bool           `json:"active"`
}

func NewRedisUserRepository(client *redis.Client) *RedisUserRepository {
	return &RedisUserRepository{client: client, prefix: "user:"}
}

func (r *RedisUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	raw, err := r.client.Get(ctx, r.prefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	var rec redisUserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Phones:       rec.Phones,
		Created:      rec.Created,
		LastLogin:    rec.LastLogin,
		Active:       rec.Active,
	}, nil
}

func (r *RedisUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+email).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save hace upsert del usuario. El primer insert usa SETNX como backstop de
// unicidad: si la clave ya existe con otro ID, devuelve ErrEmailTaken.
func (r *RedisUserRepository) Save(ctx context.Context, user domain.User) error {
	key := r.prefix + user.Email
	payload, err := json.Marshal(redisUserRecord{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Phones:       user.Phones,
		Created:      user.Created,
		LastLogin:    user.LastLogin,
		Active:       user.Active,
	})
	if err != nil {
		return err
	}

	created, err := r.client.SetNX(ctx, key, payload, 0).Result()
	if err != nil {
		return err
	}
	if created {
		return nil
	}

	raw, err := r.client.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil {
		var existing redisUserRecord
		if jsonErr := json.Unmarshal([]byte(raw), &existing); jsonErr == nil && existing.ID != user.ID {
			return ErrEmailTaken
		}
	}

	return r.client.Set(ctx, key, payload, 0).Err()
}
