package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration for hrc, stored in ~/.hrc/config.json.
// The file supports single-line // comments for documentation purposes.
// Every field can also be overridden from the environment.
type Config struct {
	Invoice  InvoiceConfig  `json:"invoice"`
	Defaults DefaultsConfig `json:"defaults"`
	Mail     MailConfig     `json:"mail"`
}

// InvoiceConfig controls the generated invoice document.
type InvoiceConfig struct {
	// Currency is the symbol printed in front of every amount.
	Currency string `json:"currency" env:"HRC_CURRENCY"`
	// DueDays is the number of days between issue and due date.
	DueDays int `json:"due_days" env:"HRC_DUE_DAYS"`
	// Notes and Terms are printed below the totals when non-empty.
	Notes string `json:"notes" env:"HRC_INVOICE_NOTES"`
	Terms string `json:"terms" env:"HRC_INVOICE_TERMS"`
	// OutputDir is where exported invoices are written.
	OutputDir string `json:"output_dir" env:"HRC_OUTPUT_DIR"`
}

// DefaultsConfig pre-fills a fresh sheet.
type DefaultsConfig struct {
	WorkerName string `json:"worker_name" env:"HRC_WORKER_NAME"`
	HourlyRate string `json:"hourly_rate" env:"HRC_HOURLY_RATE"`
}

// MailConfig holds the SMTP settings used by "hrc invoice send".
type MailConfig struct {
	SMTPHost string `json:"smtp_host" env:"HRC_SMTP_HOST"`
	SMTPPort int    `json:"smtp_port" env:"HRC_SMTP_PORT"`
	Username string `json:"username" env:"HRC_SMTP_USERNAME"`
	Password string `json:"password" env:"HRC_SMTP_PASSWORD"`
	From     string `json:"from" env:"HRC_MAIL_FROM"`
}

const (
	// DefaultCurrency is the US-dollar symbol.
	DefaultCurrency = "$"
	// DefaultDueDays is the payment term used when none is configured.
	DefaultDueDays = 30
	// DefaultOutputDir writes invoices to the working directory.
	DefaultOutputDir = "."
	// DefaultSMTPPort is the submission port (STARTTLS).
	DefaultSMTPPort = 587
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Invoice: InvoiceConfig{
			Currency:  DefaultCurrency,
			DueDays:   DefaultDueDays,
			OutputDir: DefaultOutputDir,
		},
		Mail: MailConfig{
			SMTPPort: DefaultSMTPPort,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// hrc configuration – ~/.hrc/config.json
//
// All settings are optional. Every value can also be overridden with the
// environment variable named next to it.
{
  // ── Invoice document ─────────────────────────────────────────────────────
  "invoice": {
    // Symbol printed in front of amounts (HRC_CURRENCY).
    "currency": "$",

    // Days between invoice date and due date (HRC_DUE_DAYS).
    "due_days": 30,

    // Optional free text printed below the totals
    // (HRC_INVOICE_NOTES, HRC_INVOICE_TERMS).
    "notes": "",
    "terms": "",

    // Directory exported invoices are written to (HRC_OUTPUT_DIR).
    "output_dir": "."
  },

  // ── Defaults for a fresh sheet ───────────────────────────────────────────
  "defaults": {
    // Your name as it appears in the "From" block (HRC_WORKER_NAME).
    "worker_name": "",

    // Hourly rate used until you set one (HRC_HOURLY_RATE).
    "hourly_rate": ""
  },

  // ── Mail delivery for: hrc invoice send ──────────────────────────────────
  "mail": {
    // HRC_SMTP_HOST, HRC_SMTP_PORT, HRC_SMTP_USERNAME, HRC_SMTP_PASSWORD
    "smtp_host": "",
    "smtp_port": 587,
    "username": "",
    "password": "",

    // Sender address (HRC_MAIL_FROM).
    "from": ""
  }
}
`

// FilePath returns the path of config.json inside base.
func FilePath(base string) string {
	return filepath.Join(base, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads base/config.json, creating it with annotated defaults on first
// run, and applies environment overrides on top.
func Load(base string) (Config, error) {
	path := FilePath(base)

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return defaultConfig(), fmt.Errorf("reading environment overrides: %w", err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Invoice.Currency == "" {
		cfg.Invoice.Currency = DefaultCurrency
	}
	if cfg.Invoice.DueDays <= 0 {
		cfg.Invoice.DueDays = DefaultDueDays
	}
	if cfg.Invoice.OutputDir == "" {
		cfg.Invoice.OutputDir = DefaultOutputDir
	}
	if cfg.Mail.SMTPPort <= 0 {
		cfg.Mail.SMTPPort = DefaultSMTPPort
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
