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

type TweetRepository struct {
	pool *pgxpool.Pool
}

func NewTweetRepository(pool *pgxpool.Pool) *TweetRepository {
	return &TweetRepository{pool: pool}
}

const tweetColumns = `
	id::text, content, tweeted_by::text, image, likes::text[],
	retweeted_by::text[], replies::text[],
	COALESCE(retweeted_from::text, ''), created_at, updated_at`

func scanTweet(row pgx.Row) (*entity.Tweet, error) {
	t := &entity.Tweet{}
	var likes, retweetedBy, replies []string
	if err := row.Scan(&t.ID, &t.Content, &t.TweetedBy, &t.Image,
		&likes, &retweetedBy, &replies, &t.RetweetedFrom,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t.Likes = entity.IDSet(likes)
	t.RetweetedBy = entity.IDSet(retweetedBy)
	t.Replies = entity.IDSet(replies)
	return t, nil
}

func (r *TweetRepository) Create(ctx context.Context, t *entity.Tweet) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tweets (content, tweeted_by, image, likes, retweeted_by, replies, retweeted_from)
		VALUES ($1, $2::uuid, $3, $4::uuid[], $5::uuid[], $6::uuid[], NULLIF($7, '')::uuid)
		RETURNING id::text, created_at, updated_at
	`, t.Content, t.TweetedBy, t.Image, asArray(t.Likes),
		asArray(t.RetweetedBy), asArray(t.Replies), t.RetweetedFrom)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tweetColumns+`
		FROM tweets
		WHERE id = $1::uuid
	`, id)
	return scanTweet(row)
}

func (r *TweetRepository) List(ctx context.Context) ([]*entity.Tweet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tweetColumns+`
		FROM tweets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTweets(rows)
}

func (r *TweetRepository) ListByAuthor(ctx context.Context, userID string) ([]*entity.Tweet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tweetColumns+`
		FROM tweets
		WHERE tweeted_by = $1::uuid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTweets(rows)
}

func collectTweets(rows pgx.Rows) ([]*entity.Tweet, error) {
	tweets := make([]*entity.Tweet, 0)
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}

func (r *TweetRepository) Update(ctx context.Context, t *entity.Tweet) error {
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE tweets
		SET content = $1, image = $2, likes = $3::uuid[],
		    retweeted_by = $4::uuid[], replies = $5::uuid[], updated_at = $6
		WHERE id = $7::uuid
	`, t.Content, t.Image, asArray(t.Likes), asArray(t.RetweetedBy),
		asArray(t.Replies), t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM tweets
		WHERE id = $1::uuid
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
