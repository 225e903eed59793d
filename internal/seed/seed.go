package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
	"hbnb/internal/repositories"
	"hbnb/pkg/utils"
)

//go:embed countries.json
var countriesJSON []byte

type countryRow struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func Countries() ([]db_models.Country, error) {
	var rows []countryRow
	if err := json.Unmarshal(countriesJSON, &rows); err != nil {
		return nil, err
	}
	out := make([]db_models.Country, 0, len(rows))
	for _, r := range rows {
		out = append(out, db_models.Country{Code: strings.ToUpper(r.Code), Name: r.Name})
	}
	return out, nil
}

// SeedCountries fills an empty country table from the embedded list and
// reports how many rows it wrote.
func SeedCountries(ctx context.Context, repo repositories.Repository[db_models.Country]) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	countries, err := Countries()
	if err != nil {
		return 0, err
	}
	for i := range countries {
		if err := repo.Save(ctx, &countries[i]); err != nil {
			return i, err
		}
	}
	return len(countries), nil
}

// SeedAdmin creates the configured admin account unless the email is taken.
func SeedAdmin(ctx context.Context, repo repositories.Repository[db_models.User], email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := repo.FindBy(ctx, db_models.UserFieldEmail, email)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &db_models.User{
		Email:        email,
		FirstName:    "Admin",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := repo.Save(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func Run(ctx context.Context, cfg *config.Config, countries repositories.Repository[db_models.Country], users repositories.Repository[db_models.User]) error {
	if cfg.SeedCountries {
		n, err := SeedCountries(ctx, countries)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info().Int("count", n).Msg("seeded countries")
		}
	}

	created, err := SeedAdmin(ctx, users, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", cfg.AdminEmail).Msg("seeded admin user")
	}
	return nil
}
