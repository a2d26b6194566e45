package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartflags/seat-allocation/internal/model"
)

// ConfigurationRepo reads and upserts the per-property check-in/out
// clock configuration consumed by the eligibility check.
type ConfigurationRepo struct {
	db *sql.DB
}

// NewConfigurationRepo constructs a ConfigurationRepo with the given DB handle.
func NewConfigurationRepo(db *sql.DB) *ConfigurationRepo { return &ConfigurationRepo{db: db} }

// Get returns the configuration for a property, falling back to the
// documented defaults (14:00 / 11:00) when no row exists.
func (r *ConfigurationRepo) Get(ctx context.Context, propertyID uint64) (model.Configuration, error) {
	const q = `SELECT property_id, check_in_time, check_out_time FROM configurations WHERE property_id = ?`
	var cfg model.Configuration
	err := r.db.QueryRowContext(ctx, q, propertyID).
		Scan(&cfg.PropertyID, &cfg.CheckInTime, &cfg.CheckOutTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultConfiguration(propertyID), nil
		}
		return model.Configuration{}, err
	}
	return cfg, nil
}

// Upsert stores the configuration, inserting or replacing the single
// row a property may have.
func (r *ConfigurationRepo) Upsert(ctx context.Context, cfg model.Configuration) error {
	const q = `INSERT INTO configurations (property_id, check_in_time, check_out_time)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE check_in_time = VALUES(check_in_time),
	                                   check_out_time = VALUES(check_out_time)`
	_, err := r.db.ExecContext(ctx, q, cfg.PropertyID, cfg.CheckInTime, cfg.CheckOutTime)
	return err
}
