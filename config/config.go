/*
Package config loads the withdrawal desk configuration.

PURPOSE:
  One place for everything supplied at process start: the listen port,
  which ledger backend to use, the credentials for the hosted sheet, and
  the two catalogs. Uses viper so a YAML file and environment variables
  both work (env wins, prefix WDESK_).

BACKENDS:
  memory  In-process rows, lost on exit (dev/tests)
  sqlite  Local SQLite file mirroring the ledger columns
  xlsx    Local Excel workbook
  sheets  The hosted Google Sheet (production)

CATALOGS:
  books and payment_methods override the built-in defaults. Order matters:
  the paginator shows entries in catalog order.

EXAMPLE (withdrawal-desk.yaml):
  server_port: 8080
  ledger_backend: sheets
  sheets_credentials_file: keys.json
  spreadsheet_key: 1WqGq...
  worksheet: withdrawal requests
  page_size: 25

SEE ALSO:
  - cmd/server/main.go: Startup sequence
  - withdraw/catalog.go: Default catalogs
*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/warp/withdrawal-desk/withdraw"
)

// Backend names accepted in ledger_backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendXLSX   = "xlsx"
	BackendSheets = "sheets"
)

// Config holds all settings for the withdrawal desk.
type Config struct {
	ServerPort    int    `mapstructure:"server_port"`
	LedgerBackend string `mapstructure:"ledger_backend"`

	// sqlite backend
	SQLitePath string `mapstructure:"sqlite_path"`

	// xlsx backend
	XLSXPath string `mapstructure:"xlsx_path"`

	// sheets backend
	SheetsCredentialsFile string `mapstructure:"sheets_credentials_file"`
	SpreadsheetKey        string `mapstructure:"spreadsheet_key"`

	// Worksheet title, shared by the xlsx and sheets backends.
	Worksheet string `mapstructure:"worksheet"`

	PageSize       int      `mapstructure:"page_size"`
	Books          []string `mapstructure:"books"`
	PaymentMethods []string `mapstructure:"payment_methods"`
}

// Load reads configuration from an optional YAML file in path and from
// WDESK_* environment variables. Missing file is fine; missing required
// fields for the selected backend are not.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("withdrawal-desk")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("WDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server_port", 8080)
	v.SetDefault("ledger_backend", BackendMemory)
	v.SetDefault("sqlite_path", "withdrawals.db")
	v.SetDefault("xlsx_path", "withdrawals.xlsx")
	v.SetDefault("worksheet", "withdrawal requests")
	v.SetDefault("page_size", withdraw.DefaultPageSize)

	// Bind explicitly so env-only values reach Unmarshal even without a
	// default or config-file entry.
	for _, key := range []string{
		"server_port", "ledger_backend", "sqlite_path", "xlsx_path",
		"sheets_credentials_file", "spreadsheet_key", "worksheet", "page_size",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LedgerBackend {
	case BackendMemory, BackendSQLite, BackendXLSX:
	case BackendSheets:
		if c.SheetsCredentialsFile == "" {
			return fmt.Errorf("sheets backend requires sheets_credentials_file")
		}
		if c.SpreadsheetKey == "" {
			return fmt.Errorf("sheets backend requires spreadsheet_key")
		}
	default:
		return fmt.Errorf("unknown ledger_backend %q", c.LedgerBackend)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	return nil
}

// BookCatalog returns the configured book list, or the default catalog
// when none is configured.
func (c Config) BookCatalog() withdraw.Catalog {
	if len(c.Books) > 0 {
		return withdraw.Catalog(c.Books)
	}
	return withdraw.DefaultBooks
}

// MethodCatalog returns the configured payment-method list, or the
// default catalog when none is configured.
func (c Config) MethodCatalog() withdraw.Catalog {
	if len(c.PaymentMethods) > 0 {
		return withdraw.Catalog(c.PaymentMethods)
	}
	return withdraw.DefaultPaymentMethods
}
