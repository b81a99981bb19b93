package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if err := c.Exchange.validate(); err != nil {
		return fmt.Errorf("exchange: %w", err)
	}

	if c.Notify.WebhookURL != "" && c.Notify.Timeout <= 0 {
		return fmt.Errorf("notify.timeout must be > 0 (got %v)", c.Notify.Timeout)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (e *ExchangeConfig) validate() error {
	if e.CodeTTL <= 0 {
		return fmt.Errorf("code_ttl must be > 0 (got %v)", e.CodeTTL)
	}
	if e.PickupDeadline <= 0 {
		return fmt.Errorf("pickup_deadline must be > 0 (got %v)", e.PickupDeadline)
	}
	if e.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0 (got %v)", e.SweepInterval)
	}
	if e.MaxItems <= 0 {
		return fmt.Errorf("max_items must be > 0 (got %d)", e.MaxItems)
	}
	if e.CodeLength < 6 || e.CodeLength > 16 {
		return fmt.Errorf("code_length must be between 6 and 16 (got %d)", e.CodeLength)
	}
	return nil
}
