package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	AuthorKeySalt string

	// Contact mail transport; optional, contact mail is disabled when unset
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	ContactEmail string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("inkpress", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AuthorKeySalt, "author-salt", "", "Author key salt (prefer env)")

	// Contact mail
	fs.StringVar(&cfg.SMTPAddr, "smtp-addr", "", "SMTP host:port for contact mail")
	fs.StringVar(&cfg.SMTPFrom, "smtp-from", "", "From address for contact mail")
	fs.StringVar(&cfg.ContactEmail, "contact-email", "", "Recipient for contact notifications")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.AuthorKeySalt == "" {
		cfg.AuthorKeySalt = os.Getenv("AUTHOR_KEY_SALT")
	}
	if cfg.AuthorKeySalt == "" {
		return Config{}, errors.New("AUTHOR_KEY_SALT required")
	}

	// Mail settings are env-only when not passed as flags; all optional
	if cfg.SMTPAddr == "" {
		cfg.SMTPAddr = os.Getenv("SMTP_ADDR")
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	}
	if cfg.ContactEmail == "" {
		cfg.ContactEmail = os.Getenv("CONTACT_EMAIL")
	}

	return cfg, nil
}
