// Package settings stores the company profile printed on invoices.
package settings

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillbook/tillbook/internal/platform/db"
	"github.com/tillbook/tillbook/internal/shared"
)

// Profile is the company identity rendered on invoice documents.
type Profile struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
}

const (
	keyCompanyName    = "company_name"
	keyCompanyAddress = "company_address"
	keyCompanyPhone   = "company_phone"
)

// Repository persists settings as key/value rows.
type Repository interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, shared.Storagef("load settings", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, shared.Storagef("scan setting", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Storagef("load settings", err)
	}
	return values, nil
}

// Save upserts all values in one transaction so a partial profile is
// never visible.
func (r *repository) Save(ctx context.Context, values map[string]string) error {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for k, v := range values {
			_, err := tx.Exec(ctx,
				`INSERT INTO settings (key, value) VALUES ($1, $2)
				 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, k, v)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.Storagef("save settings", err)
	}
	return nil
}

// Service reads and writes the company profile.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Profile loads the company profile; missing keys come back empty.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	values, err := s.repo.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		CompanyName:    values[keyCompanyName],
		CompanyAddress: values[keyCompanyAddress],
		CompanyPhone:   values[keyCompanyPhone],
	}, nil
}

// SaveProfile persists the company profile.
func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	return s.repo.Save(ctx, map[string]string{
		keyCompanyName:    p.CompanyName,
		keyCompanyAddress: p.CompanyAddress,
		keyCompanyPhone:   p.CompanyPhone,
	})
}
