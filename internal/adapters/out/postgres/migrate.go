package postgres

import (
	"fmt"

	"parcelhub/internal/adapters/out/postgres/feeconfigrepo"
	"parcelhub/internal/adapters/out/postgres/hubrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the application, children first, so it
// can be fed straight to TRUNCATE.
var Tables = []string{"parcel_tracking_logs", "parcels", "user_addresses", "users", "hubs", "fee_configs"}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&hubrepo.HubDTO{},
		&feeconfigrepo.FeeConfigDTO{},
		&userrepo.UserDTO{},
		&userrepo.AddressDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.TrackingLogDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
