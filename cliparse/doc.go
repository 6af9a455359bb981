// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

# Precedence

CLI flags win over environment variables:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

Required (parse fails without them):

  - DATABASE_URL (-d): PostgreSQL connection string
  - AUTHOR_KEY_SALT (--author-salt): secret for author key HMAC

Optional:

  - PORT (-p): server port, default 3318
  - SMTP_ADDR (--smtp-addr), SMTP_USERNAME, SMTP_PASSWORD,
    SMTP_FROM (--smtp-from): contact mail relay; mail is disabled when unset
  - CONTACT_EMAIL (--contact-email): contact notification recipient
*/
package cliparse
