// Package config loads configuration for the two binaries: the Lambda
// handler (environment variables, with a .env file for local runs) and the
// dnspreview CLI (a YAML domain description).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/cfn-ses-domain/internal/sesdomain"
)

// Handler holds handler runtime settings. Everything is optional: the zero
// value runs against the real SES endpoints with the Lambda role's
// credentials and INFO logging.
type Handler struct {
	LogLevel string
	// SESEndpointURL points the handler at an alternate SES endpoint, e.g.
	// LocalStack during integration testing.
	SESEndpointURL string
	AccessKey      string
	SecretKey      string
}

// LoadHandler reads handler settings from the environment. A .env file is
// loaded first if present (no error if missing), so local invocations can
// keep overrides out of the shell.
func LoadHandler() Handler {
	_ = godotenv.Load()

	return Handler{
		LogLevel:       os.Getenv("LOG_LEVEL"),
		SESEndpointURL: os.Getenv("SES_ENDPOINT_URL"),
		AccessKey:      os.Getenv("AWS_SES_ACCESS_KEY"),
		SecretKey:      os.Getenv("AWS_SES_SECRET_KEY"),
	}
}

// Preview describes a domain configuration for the dnspreview CLI, plus
// optional token material so an already-provisioned identity's real records
// can be rendered.
type Preview struct {
	Domain            string   `yaml:"domain"`
	EnableSend        *bool    `yaml:"enable_send"`
	EnableReceive     bool     `yaml:"enable_receive"`
	MailFromSubdomain string   `yaml:"mail_from_subdomain"`
	CustomDMARC       string   `yaml:"custom_dmarc"`
	TTL               string   `yaml:"ttl"`
	Region            string   `yaml:"region"`
	VerificationToken string   `yaml:"verification_token"`
	DkimTokens        []string `yaml:"dkim_tokens"`
}

// LoadPreview reads and parses a preview file, applying the same defaults
// the handler applies to resource properties.
func LoadPreview(path string) (*Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Preview
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Set defaults
	if p.TTL == "" {
		p.TTL = sesdomain.DefaultTTL
	}
	if p.Region == "" {
		p.Region = "us-east-1"
	}

	return &p, nil
}

// DomainConfig converts the preview into the handler's domain configuration.
func (p *Preview) DomainConfig() (sesdomain.DomainConfig, error) {
	domain, err := sesdomain.NormalizeDomain(p.Domain)
	if err != nil {
		return sesdomain.DomainConfig{}, err
	}

	enableSend := true
	if p.EnableSend != nil {
		enableSend = *p.EnableSend
	}

	return sesdomain.DomainConfig{
		Domain:            domain,
		EnableSend:        enableSend,
		EnableReceive:     p.EnableReceive,
		MailFromSubdomain: p.MailFromSubdomain,
		CustomDMARC:       p.CustomDMARC,
		TTL:               p.TTL,
		Region:            p.Region,
	}, nil
}
