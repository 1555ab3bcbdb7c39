package httpclient

import (
	"errors"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config configures the backend HTTP client.
type Config struct {
	// BaseURL is prepended to every relative request path.
	BaseURL string
	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration
	// Headers are sent with every request; per-request headers override them.
	Headers map[string]string
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	if _, ok := c.Headers["Accept"]; !ok {
		c.Headers["Accept"] = "application/json"
	}
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("httpclient: base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.New("httpclient: invalid base URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("httpclient: base URL must be http or https")
	}
	if u.Host == "" {
		return errors.New("httpclient: base URL has no host")
	}
	return nil
}
