// Package config loads officebase settings from the environment and an
// optional YAML file. Secrets and addresses come from the environment
// (a .env file is honored when present); tunables like the rent slider
// domain live in YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Airtable Airtable
	Server   Server
	Compare  Compare `yaml:"compare"`
	Rent     Rent    `yaml:"rent"`
	SMTP     SMTP    `yaml:"smtp"`
}

// Airtable holds CMS credentials and table names.
type Airtable struct {
	APIKey        string
	BaseID        string
	ProjectsTable string `yaml:"projects_table"`
	LeadsTable    string `yaml:"leads_table"`
}

// Server holds the HTTP server and cache settings.
type Server struct {
	Addr        string
	DBPath      string
	ServerURL   string // base URL the CLI talks to
	RefreshCron string `yaml:"refresh_cron"`
}

// Compare holds the comparison selection settings.
type Compare struct {
	Capacity    int    `yaml:"capacity"`
	StoragePath string `yaml:"storage_path"`
}

// SMTP holds optional mail settings for lead notifications. When Host
// and From are set, every accepted inquiry is mailed to NotifyTo.
type SMTP struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	NotifyTo []string `yaml:"notify_to"`
}

// Rent describes the rent slider: its domain and tick values, EUR/sqm.
type Rent struct {
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Ticks []float64 `yaml:"ticks"`
}

// Load reads configuration. A .env file in the working directory is
// loaded first if present; yamlPath may be empty, in which case
// ~/.officebase/config.yaml is tried and silently skipped when absent.
func Load(yamlPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := yamlPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".officebase", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			if yamlPath != "" {
				return nil, fmt.Errorf("config file %s not found", yamlPath)
			}
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Rent.Max < cfg.Rent.Min {
		return nil, fmt.Errorf("rent domain [%g, %g] is inverted", cfg.Rent.Min, cfg.Rent.Max)
	}
	if cfg.Compare.Capacity <= 0 {
		return nil, fmt.Errorf("compare capacity must be positive, got %d", cfg.Compare.Capacity)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Airtable: Airtable{
			ProjectsTable: "Projects",
			LeadsTable:    "Leads",
		},
		Server: Server{
			Addr:        ":8080",
			ServerURL:   "http://localhost:8080",
			RefreshCron: "@every 15m",
		},
		Compare: Compare{Capacity: 3},
		SMTP:    SMTP{Port: "587"},
		Rent: Rent{
			Min:   0,
			Max:   20,
			Ticks: []float64{5, 7, 10, 12.5, 15, 20},
		},
	}
}

// applyEnv overlays environment variables onto cfg. Env wins over YAML.
func applyEnv(cfg *Config) {
	setString(&cfg.Airtable.APIKey, "AIRTABLE_API_KEY")
	setString(&cfg.Airtable.BaseID, "AIRTABLE_BASE_ID")
	setString(&cfg.Airtable.ProjectsTable, "AIRTABLE_PROJECTS_TABLE")
	setString(&cfg.Airtable.LeadsTable, "AIRTABLE_LEADS_TABLE")
	setString(&cfg.Server.Addr, "OFFICEBASE_ADDR")
	setString(&cfg.Server.DBPath, "OFFICEBASE_DB")
	setString(&cfg.Server.ServerURL, "OFFICEBASE_SERVER_URL")
	setString(&cfg.Server.RefreshCron, "OFFICEBASE_REFRESH_CRON")
	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Port, "SMTP_PORT")
	setString(&cfg.SMTP.User, "SMTP_USER")
	setString(&cfg.SMTP.Pass, "SMTP_PASS")
	setString(&cfg.SMTP.From, "SMTP_FROM")
	if v := os.Getenv("LEAD_NOTIFY_TO"); v != "" {
		cfg.SMTP.NotifyTo = splitList(v)
	}
}

// splitList splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
