package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/models"
)

var (
	ErrBabyNotFound       = errors.New("baby not found")
	ErrInviteCodeNotFound = errors.New("invite code not found")
	ErrAlreadyMember      = errors.New("user is already a member of this baby's household")
	ErrNotMember          = errors.New("user is not a member of this baby's household")
)

const uniqueViolation = "23505"

// Invite codes avoid lowercase to survive being read aloud and retyped
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

type BabyRepository struct {
	db *pgxpool.Pool
}

func NewBabyRepository(db *pgxpool.Pool) *BabyRepository {
	return &BabyRepository{db: db}
}

// NewInviteCode mints a random 6-character uppercase alphanumeric code
func NewInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

// CreateWithOwner creates a baby profile and the creator's owner membership
// in a single transaction, so a failed membership insert can never leave an
// orphan profile behind. The invite code is minted here; on the unlikely
// collision the insert is retried with a fresh code.
func (r *BabyRepository) CreateWithOwner(ctx context.Context, baby *models.Baby, ownerID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if baby.ID == uuid.Nil {
		baby.ID = uuid.New()
	}

	insertBaby := `
		INSERT INTO babies (id, name, birthday, gender, invite_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	for attempt := 0; ; attempt++ {
		code, err := NewInviteCode()
		if err != nil {
			return err
		}
		baby.InviteCode = code

		err = tx.QueryRow(ctx, insertBaby,
			baby.ID, baby.Name, baby.Birthday, baby.Gender, baby.InviteCode,
		).Scan(&baby.CreatedAt, &baby.UpdatedAt)
		if err == nil {
			break
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && attempt < 3 {
			continue
		}
		return err
	}

	insertMember := `
		INSERT INTO baby_users (id, baby_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.Exec(ctx, insertMember, uuid.New(), baby.ID, ownerID, models.RoleOwner); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetBabyForUser returns the baby the user tracks plus their household
// role. Satisfies middleware.BabyResolver. A user can belong to several
// households; the earliest membership wins, matching the single-baby
// resolution of the mobile client.
func (r *BabyRepository) GetBabyForUser(ctx context.Context, userID uuid.UUID) (*models.Baby, string, error) {
	query := `
		SELECT b.id, b.name, b.birthday, b.gender, b.invite_code, b.created_at, b.updated_at,
		       bu.role
		FROM baby_users bu
		JOIN babies b ON b.id = bu.baby_id
		WHERE bu.user_id = $1
		ORDER BY bu.created_at
		LIMIT 1
	`

	var baby models.Baby
	var role string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&baby.ID,
		&baby.Name,
		&baby.Birthday,
		&baby.Gender,
		&baby.InviteCode,
		&baby.CreatedAt,
		&baby.UpdatedAt,
		&role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", middleware.ErrNoBaby
		}
		return nil, "", err
	}

	return &baby, role, nil
}

// GetByInviteCode looks up a baby profile for the join flow
func (r *BabyRepository) GetByInviteCode(ctx context.Context, code string) (*models.Baby, error) {
	query := `
		SELECT id, name, birthday, gender, invite_code, created_at, updated_at
		FROM babies
		WHERE invite_code = $1
	`

	var baby models.Baby
	err := r.db.QueryRow(ctx, query, code).Scan(
		&baby.ID,
		&baby.Name,
		&baby.Birthday,
		&baby.Gender,
		&baby.InviteCode,
		&baby.CreatedAt,
		&baby.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteCodeNotFound
		}
		return nil, err
	}

	return &baby, nil
}

// AddMember links a user to a baby's household
func (r *BabyRepository) AddMember(ctx context.Context, babyID, userID uuid.UUID, role string) error {
	query := `
		INSERT INTO baby_users (id, baby_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), babyID, userID, role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyMember
		}
		return err
	}

	return nil
}

// MembershipRole returns the user's role for a baby, or ErrNotMember.
// This is the server-side stand-in for row-level security: every log
// operation goes through it before touching the logs table.
func (r *BabyRepository) MembershipRole(ctx context.Context, babyID, userID uuid.UUID) (string, error) {
	query := `SELECT role FROM baby_users WHERE baby_id = $1 AND user_id = $2`

	var role string
	err := r.db.QueryRow(ctx, query, babyID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotMember
		}
		return "", err
	}

	return role, nil
}

// Update edits the baby profile fields exposed to users
func (r *BabyRepository) Update(ctx context.Context, baby *models.Baby) error {
	query := `
		UPDATE babies
		SET name = $1, birthday = $2, gender = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, baby.Name, baby.Birthday, baby.Gender, baby.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrBabyNotFound
	}

	return nil
}
