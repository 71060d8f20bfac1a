package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/playperu/stationhunt/internal/hunt"
)

// defaultAdminHash is bcrypt("changeme").
const defaultAdminHash = "$2a$10$trCdqP4npsbw0R1vQxVwXeT1HebzRmP01SXaNGPz1eSAZ7mpcL0Uu"

type Config struct {
	HTTPAddr   string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath     string     `env:"DB_PATH" envDefault:"data/hunt.db"`
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir     string     `env:"SPA_DIR"`
	ScannerURL string     `env:"SCANNER_URL" envDefault:"https://scannerfuuun.vercel.app"`

	Stations        []string `env:"STATIONS" envSeparator:","`
	SpecialStations []string `env:"SPECIAL_STATIONS" envSeparator:","`
	TeamPrefix      string   `env:"TEAM_PREFIX" envDefault:"team"`
	TeamCount       int      `env:"TEAM_COUNT" envDefault:"100"`
	DisplayZone     string   `env:"DISPLAY_ZONE" envDefault:"Europe/Rome"`

	AdminEmail        string `env:"ADMIN_EMAIL" envDefault:"admin@stationhunt.local"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if len(cfg.Stations) == 0 {
		cfg.Stations = hunt.DefaultStations
		if len(cfg.SpecialStations) == 0 {
			cfg.SpecialStations = hunt.DefaultSpecialStations
		}
	}
	if cfg.AdminPasswordHash == "" {
		cfg.AdminPasswordHash = defaultAdminHash
	}
	return &cfg, nil
}

// Roster builds the station and team allow-lists.
func (c *Config) Roster() (hunt.StationSet, hunt.TeamSet, error) {
	stations, err := hunt.NewStationSet(c.Stations, c.SpecialStations)
	if err != nil {
		return hunt.StationSet{}, hunt.TeamSet{}, fmt.Errorf("stations: %w", err)
	}
	teams, err := hunt.NewTeamRange(c.TeamPrefix, c.TeamCount)
	if err != nil {
		return hunt.StationSet{}, hunt.TeamSet{}, fmt.Errorf("teams: %w", err)
	}
	return stations, teams, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayZone)
	if err != nil {
		return nil, fmt.Errorf("loading display zone %q: %w", c.DisplayZone, err)
	}
	return loc, nil
}
