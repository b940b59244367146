package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/model"
)

// FileName is the default configuration file of a project.
const FileName = "compta.yaml"

// Config represents the top-level compta.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Accounts AccountsConfig `yaml:"accounts"`
	Journals JournalsConfig `yaml:"journals"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name  string `yaml:"name" validate:"required"`
	Siren string `yaml:"siren,omitempty" validate:"omitempty,numeric,len=9"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start" validate:"required,datetime=01-02"` // "MM-DD" format, e.g. "01-01"
}

// AccountsConfig holds the accounts the engine books to on its own.
type AccountsConfig struct {
	ClientPrefix   string `yaml:"client_prefix" validate:"required,numeric"`
	SupplierPrefix string `yaml:"supplier_prefix" validate:"required,numeric"`
	ProfitAccount  string `yaml:"profit_account" validate:"required,numeric,startswith=1"`
	LossAccount    string `yaml:"loss_account" validate:"required,numeric,startswith=1"`
}

// JournalsConfig selects the journals of generated entries.
type JournalsConfig struct {
	Closing string `yaml:"closing" validate:"required,oneof=AC VE BQ OD AN PA EX"`
	Opening string `yaml:"opening" validate:"required,oneof=AC VE BQ OD AN PA EX"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a compta.yaml file from disk. Missing sections keep their
// defaults; the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with PCG defaults for a new project.
func Default(businessName string) *Config {
	r := accounts.DefaultRules()
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Accounts: AccountsConfig{
			ClientPrefix:   r.ClientPrefix,
			SupplierPrefix: r.SupplierPrefix,
			ProfitAccount:  r.ProfitAccount,
			LossAccount:    r.LossAccount,
		},
		Journals: JournalsConfig{
			Closing: string(model.JournalMisc),
			Opening: string(model.JournalOpening),
		},
	}
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Rules returns the account rules for the engine.
func (c *Config) Rules() accounts.Rules {
	return accounts.Rules{
		ClientPrefix:   c.Accounts.ClientPrefix,
		SupplierPrefix: c.Accounts.SupplierPrefix,
		ProfitAccount:  c.Accounts.ProfitAccount,
		LossAccount:    c.Accounts.LossAccount,
	}
}

// ClosingJournal returns the journal of closing entries.
func (c *Config) ClosingJournal() model.JournalCode { return model.JournalCode(c.Journals.Closing) }

// OpeningJournal returns the journal of opening entries.
func (c *Config) OpeningJournal() model.JournalCode { return model.JournalCode(c.Journals.Opening) }
