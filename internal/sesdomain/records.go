package sesdomain

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// SynthesizeRecords derives the DNS records activating a provisioned SES
// domain identity. It is pure: identical (cfg, tokens) inputs always yield
// identical output. Records are appended in a fixed order (verification TXT,
// DKIM CNAMEs, mail-from MX, mail-from SPF, DMARC, receive MX) but consumers
// must treat the set as unordered.
func SynthesizeRecords(cfg DomainConfig, tokens IdentityTokens) RecordSet {
	rs := RecordSet{Records: []DnsRecord{}}
	fqdn := dns.Fqdn(cfg.Domain)

	if tokens.VerificationToken != "" {
		rs.Records = append(rs.Records, DnsRecord{
			Type:            "TXT",
			Name:            "_amazonses." + fqdn,
			TTL:             cfg.TTL,
			ResourceRecords: []string{quote(tokens.VerificationToken)},
		})
	}

	for _, token := range tokens.DkimTokens {
		rs.Records = append(rs.Records, DnsRecord{
			Type:            "CNAME",
			Name:            token + "._domainkey." + fqdn,
			TTL:             cfg.TTL,
			ResourceRecords: []string{token + ".dkim.amazonses.com."},
		})
	}

	if tokens.MailFromDomain != "" {
		rs.MailFromMX = fmt.Sprintf("feedback-smtp.%s.amazonses.com", cfg.Region)
		rs.MailFromSPF = spfPolicy
		mailFromFqdn := dns.Fqdn(tokens.MailFromDomain)
		rs.Records = append(rs.Records,
			DnsRecord{
				Type:            "MX",
				Name:            mailFromFqdn,
				TTL:             cfg.TTL,
				ResourceRecords: []string{"10 " + rs.MailFromMX + "."},
			},
			DnsRecord{
				Type:            "TXT",
				Name:            mailFromFqdn,
				TTL:             cfg.TTL,
				ResourceRecords: []string{rs.MailFromSPF},
			},
		)
	}

	// DMARC is about sending authority for the domain itself, so it keys off
	// EnableSend rather than the mail-from configuration.
	if cfg.EnableSend {
		rs.DMARC = cfg.DMARC()
		rs.Records = append(rs.Records, DnsRecord{
			Type:            "TXT",
			Name:            "_dmarc." + fqdn,
			TTL:             cfg.TTL,
			ResourceRecords: []string{rs.DMARC},
		})
	}

	if cfg.EnableReceive {
		rs.ReceiveMX = fmt.Sprintf("inbound-smtp.%s.amazonaws.com", cfg.Region)
		rs.Records = append(rs.Records, DnsRecord{
			Type:            "MX",
			Name:            fqdn,
			TTL:             cfg.TTL,
			ResourceRecords: []string{"10 " + rs.ReceiveMX + "."},
		})
	}

	rs.ZoneFile = zoneFileEntries(rs.Records)
	return rs
}

// EmptyRecordSet is what a Delete event reports: the resource is being torn
// down, so no records are desired regardless of the declared options.
func EmptyRecordSet() RecordSet {
	return RecordSet{Records: []DnsRecord{}, ZoneFile: []string{}}
}

// zoneFileEntries renders each record as one zone-file line. The name column
// is padded to the longest name and the type column to a fixed width of 5
// (CNAME), purely so the block reads cleanly when pasted into a zone file.
func zoneFileEntries(records []DnsRecord) []string {
	entries := make([]string, 0, len(records))
	nameWidth := 0
	for _, r := range records {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}
	for _, r := range records {
		entries = append(entries, fmt.Sprintf("%-*s\t%s\tIN\t%-5s\t%s",
			nameWidth, r.Name, r.TTL, r.Type, strings.Join(r.ResourceRecords, " ")))
	}
	return entries
}

func quote(s string) string {
	return `"` + s + `"`
}
