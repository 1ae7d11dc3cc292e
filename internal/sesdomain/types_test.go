package sesdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "example.com", want: "example.com"},
		{name: "trailing dot stripped", raw: "example.com.", want: "example.com"},
		{name: "whitespace trimmed", raw: "  example.com.  ", want: "example.com"},
		{name: "only one trailing dot stripped", raw: "example.com..", want: "example.com."},
		{name: "empty", raw: "", wantErr: true},
		{name: "dot and whitespace only", raw: " . ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDomain(tt.raw)
			if tt.wantErr {
				require.EqualError(t, err, "The 'Domain' property is required.")
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePropertiesDefaults(t *testing.T) {
	cfg, err := ParseProperties(map[string]interface{}{"Domain": "example.com."}, "mock-region")
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Domain)
	assert.True(t, cfg.EnableSend)
	assert.False(t, cfg.EnableReceive)
	assert.Empty(t, cfg.MailFromSubdomain)
	assert.Empty(t, cfg.CustomDMARC)
	assert.Equal(t, "1800", cfg.TTL)
	assert.Equal(t, "mock-region", cfg.Region)
}

func TestParsePropertiesCoercion(t *testing.T) {
	cfg, err := ParseProperties(map[string]interface{}{
		"Domain":        "example.com",
		"EnableSend":    "false", // string-typed bool from the template
		"EnableReceive": "true",
		"TTL":           float64(300), // unquoted number decodes as float64
		"Region":        "us-test-2",
		"CustomDMARC":   nil, // explicit null means the default policy
	}, "mock-region")
	require.NoError(t, err)

	assert.False(t, cfg.EnableSend)
	assert.True(t, cfg.EnableReceive)
	assert.Equal(t, "300", cfg.TTL)
	assert.Equal(t, "us-test-2", cfg.Region)
	assert.Empty(t, cfg.CustomDMARC)
}

func TestParsePropertiesMissingDomain(t *testing.T) {
	_, err := ParseProperties(map[string]interface{}{}, "mock-region")
	require.EqualError(t, err, "The 'Domain' property is required.")
}

func TestMailFromDomain(t *testing.T) {
	cfg := DomainConfig{Domain: "example.com"}
	assert.Equal(t, "mail.example.com", cfg.MailFromDomain())

	cfg.MailFromSubdomain = "bounce"
	assert.Equal(t, "bounce.example.com", cfg.MailFromDomain())
}

func TestDMARCFallback(t *testing.T) {
	cfg := DomainConfig{Domain: "example.com"}
	assert.Equal(t, DefaultDMARC, cfg.DMARC())

	cfg.CustomDMARC = `"v=DMARC1; p=reject;"`
	assert.Equal(t, `"v=DMARC1; p=reject;"`, cfg.DMARC())
}
