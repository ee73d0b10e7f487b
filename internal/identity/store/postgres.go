package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thientu9562/identity-management/internal/identity/models"
	"github.com/thientu9562/identity-management/internal/platform/postgres"
	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/sentinel"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

// PostgresStore persists identities in PostgreSQL. Writes join the
// transaction carried in ctx, if any.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, identity *models.Identity) error {
	h := identity.Handles
	_, err := tx.Q(ctx, s.db).ExecContext(ctx, `
		INSERT INTO identities (user_address, age, is_student, passport_hash, city, country_code, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		identity.User.Bytes(),
		h[models.AttributeAge][:],
		h[models.AttributeIsStudent][:],
		h[models.AttributePassportHash][:],
		h[models.AttributeCity][:],
		h[models.AttributeCountryCode][:],
		identity.RegisteredAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("identity %s: %w", identity.User, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUser(ctx context.Context, user domain.Address) (*models.Identity, error) {
	var (
		cols     [models.AttributeCount][]byte
		identity = models.Identity{User: user}
	)
	err := tx.Q(ctx, s.db).QueryRowContext(ctx, `
		SELECT age, is_student, passport_hash, city, country_code, registered_at
		FROM identities WHERE user_address = $1`, user.Bytes(),
	).Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &identity.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity %s: %w", user, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	for i, col := range cols {
		if len(col) != len(identity.Handles[i]) {
			return nil, fmt.Errorf("identity %s: corrupt %s handle", user, models.AttributeKind(i))
		}
		copy(identity.Handles[i][:], col)
	}
	identity.RegisteredAt = identity.RegisteredAt.UTC()
	return &identity, nil
}

func (s *PostgresStore) Exists(ctx context.Context, user domain.Address) (bool, error) {
	var exists bool
	err := tx.Q(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM identities WHERE user_address = $1)`, user.Bytes(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check identity: %w", err)
	}
	return exists, nil
}
