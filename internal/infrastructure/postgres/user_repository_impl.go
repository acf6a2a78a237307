package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"twitter-clone-backend/internal/domain/entity"
	"twitter-clone-backend/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id::text, name, username, email, password_hash, profile_picture,
	location, date_of_birth, followers::text[], following::text[],
	created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var followers, following []string
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&u.ProfilePicture, &u.Location, &u.DateOfBirth,
		&followers, &following, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Followers = entity.IDSet(followers)
	u.Following = entity.IDSet(following)
	return u, nil
}

// asArray keeps uuid[] columns non-null when the set is empty.
func asArray(s entity.IDSet) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, username, email, password_hash, profile_picture, location, date_of_birth, followers, following)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid[], $9::uuid[])
		RETURNING id::text, created_at, updated_at
	`, u.Name, u.Username, u.Email, u.PasswordHash, u.ProfilePicture,
		u.Location, u.DateOfBirth, asArray(u.Followers), asArray(u.Following))

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1::uuid
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, username = $2, email = $3, password_hash = $4,
		    profile_picture = $5, location = $6, date_of_birth = $7,
		    followers = $8::uuid[], following = $9::uuid[], updated_at = $10
		WHERE id = $11::uuid
	`, u.Name, u.Username, u.Email, u.PasswordHash, u.ProfilePicture,
		u.Location, u.DateOfBirth, asArray(u.Followers), asArray(u.Following),
		u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
