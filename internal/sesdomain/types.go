// Package sesdomain provisions an Amazon SES domain identity on behalf of a
// CloudFormation custom resource and derives the DNS records needed to
// activate it.
//
// The package is split along the lifecycle of one stack event: property
// parsing and domain normalization (this file), the identity reconciler
// driving the SES API (identity.go), pure DNS record synthesis (records.go),
// and the top-level event controller (handler.go).
package sesdomain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTTL is applied to every synthesized record when the resource does
// not declare one.
const DefaultTTL = "1800"

// DefaultDMARC is the published DMARC policy when CustomDMARC is absent.
// Stored pre-quoted, as it appears in TXT rdata.
const DefaultDMARC = `"v=DMARC1; p=none; pct=100; sp=none; aspf=r;"`

// spfPolicy is fixed for SES mail-from domains and is not user-configurable.
const spfPolicy = `"v=spf1 include:amazonses.com -all"`

// DomainConfig is the declared state of one SES domain identity, decoded
// from the custom resource's properties. It is immutable per invocation.
type DomainConfig struct {
	Domain            string
	EnableSend        bool
	EnableReceive     bool
	MailFromSubdomain string
	CustomDMARC       string // empty means DefaultDMARC
	TTL               string
	Region            string
}

// MailFromDomain returns the bounce/envelope-sender domain for the identity:
// the declared subdomain under Domain, or "mail.<domain>" when none is set.
func (c DomainConfig) MailFromDomain() string {
	if c.MailFromSubdomain != "" {
		return c.MailFromSubdomain + "." + c.Domain
	}
	return "mail." + c.Domain
}

// DMARC returns the DMARC policy to publish, falling back to DefaultDMARC.
func (c DomainConfig) DMARC() string {
	if c.CustomDMARC != "" {
		return c.CustomDMARC
	}
	return DefaultDMARC
}

// IdentityTokens carries what the SES API returned for one invocation.
// Zero values mean the corresponding call was not made for this event.
type IdentityTokens struct {
	VerificationToken string
	DkimTokens        []string
	MailFromDomain    string
}

// DnsRecord is one desired DNS record, shaped to drop straight into a
// Route53 RecordSetGroup (TTL is a string by that contract).
type DnsRecord struct {
	Type            string   `json:"Type"`
	Name            string   `json:"Name"`
	TTL             string   `json:"TTL"`
	ResourceRecords []string `json:"ResourceRecords"`
}

// RecordSet is the full output of record synthesis: the records themselves,
// a parallel zone-file rendering, and the scalar outputs surfaced to the
// stack. Scalar hostnames carry no trailing dot; record rdata hostnames do.
type RecordSet struct {
	Records     []DnsRecord
	ZoneFile    []string
	MailFromMX  string
	MailFromSPF string
	DMARC       string
	ReceiveMX   string
}

// ValidationError reports a bad resource property before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// errDomainRequired is the fixed user-facing message for a missing domain.
var errDomainRequired = &ValidationError{Message: "The 'Domain' property is required."}

// NormalizeDomain trims surrounding whitespace and at most one trailing dot
// from raw. It fails when nothing remains; all other validation is left to
// the SES API, whose errors surface verbatim.
func NormalizeDomain(raw string) (string, error) {
	domain := strings.TrimSpace(raw)
	domain = strings.TrimSuffix(domain, ".")
	if domain == "" {
		return "", errDomainRequired
	}
	return domain, nil
}

// ParseProperties decodes a CloudFormation ResourceProperties map into a
// DomainConfig. CloudFormation delivers booleans and numbers as strings
// depending on template flavor, so both forms are coerced. stackRegion is
// the fallback when the resource declares no Region of its own.
func ParseProperties(props map[string]interface{}, stackRegion string) (DomainConfig, error) {
	domain, err := NormalizeDomain(stringProp(props, "Domain"))
	if err != nil {
		return DomainConfig{}, err
	}

	cfg := DomainConfig{
		Domain:            domain,
		EnableSend:        boolProp(props, "EnableSend", true),
		EnableReceive:     boolProp(props, "EnableReceive", false),
		MailFromSubdomain: stringProp(props, "MailFromSubdomain"),
		CustomDMARC:       stringProp(props, "CustomDMARC"),
		TTL:               stringProp(props, "TTL"),
		Region:            stringProp(props, "Region"),
	}
	if cfg.TTL == "" {
		cfg.TTL = DefaultTTL
	}
	if cfg.Region == "" {
		cfg.Region = stackRegion
	}
	return cfg, nil
}

func stringProp(props map[string]interface{}, key string) string {
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; TTL arrives this way from
		// templates that declare it unquoted.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolProp(props map[string]interface{}, key string, def bool) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			return b
		}
		return def
	default:
		return def
	}
}
