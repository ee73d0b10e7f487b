package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/thientu9562/identity-management/pkg/domain"
	"github.com/thientu9562/identity-management/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Admin(ctx context.Context) (domain.Address, error) {
	var raw []byte
	err := tx.Q(ctx, s.db).QueryRowContext(ctx,
		`SELECT admin_address FROM access_control WHERE singleton`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, ErrNoAdmin
	}
	if err != nil {
		return domain.Address{}, fmt.Errorf("read admin: %w", err)
	}
	var addr domain.Address
	if len(raw) != len(addr) {
		return domain.Address{}, errors.New("read admin: corrupt address")
	}
	copy(addr[:], raw)
	return addr, nil
}

func (s *PostgresStore) Init(ctx context.Context, admin domain.Address, at time.Time) (bool, error) {
	res, err := tx.Q(ctx, s.db).ExecContext(ctx, `
		INSERT INTO access_control (singleton, admin_address, updated_at)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO NOTHING`, admin.Bytes(), at)
	if err != nil {
		return false, fmt.Errorf("init admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("init admin: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) Transfer(ctx context.Context, current, next domain.Address, at time.Time) error {
	res, err := tx.Q(ctx, s.db).ExecContext(ctx, `
		UPDATE access_control SET admin_address = $2, updated_at = $3
		WHERE singleton AND admin_address = $1`, current.Bytes(), next.Bytes(), at)
	if err != nil {
		return fmt.Errorf("transfer admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transfer admin: %w", err)
	}
	if n == 0 {
		return ErrAdminChanged
	}
	return nil
}

func (s *PostgresStore) AddCountryCode(ctx context.Context, code domain.CountryCode, at time.Time) (bool, error) {
	res, err := tx.Q(ctx, s.db).ExecContext(ctx, `
		INSERT INTO valid_country_codes (code, added_at) VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING`, int16(code), at)
	if err != nil {
		return false, fmt.Errorf("add country code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add country code: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) HasCountryCode(ctx context.Context, code domain.CountryCode) (bool, error) {
	var ok bool
	err := tx.Q(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM valid_country_codes WHERE code = $1)`, int16(code)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check country code: %w", err)
	}
	return ok, nil
}

func (s *PostgresStore) CountryCodes(ctx context.Context) ([]domain.CountryCode, error) {
	var raw pq.Int64Array
	err := tx.Q(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(array_agg(code ORDER BY code), '{}') FROM valid_country_codes`).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("list country codes: %w", err)
	}
	codes := make([]domain.CountryCode, 0, len(raw))
	for _, v := range raw {
		codes = append(codes, domain.CountryCode(v))
	}
	return codes, nil
}
