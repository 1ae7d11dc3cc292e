// dnspreview renders the DNS record set a given domain configuration will
// produce, without touching CloudFormation or SES. Operators wiring DNS by
// hand (or outside Route53) can paste the zone-file output directly; the
// route53 format emits a ready-to-apply change batch.
//
// When the config file carries no token material, placeholder tokens are
// generated so the record shapes are still visible.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/google/uuid"

	"github.com/ignite/cfn-ses-domain/internal/config"
	"github.com/ignite/cfn-ses-domain/internal/sesdomain"
)

func main() {
	configPath := flag.String("config", "domain.yaml", "path to the domain preview YAML file")
	format := flag.String("format", "zone", "output format: zone, json, or route53")
	flag.Parse()

	preview, err := config.LoadPreview(*configPath)
	if err != nil {
		fatalf("loading %s: %v", *configPath, err)
	}

	cfg, err := preview.DomainConfig()
	if err != nil {
		fatalf("%v", err)
	}

	rs := sesdomain.SynthesizeRecords(cfg, previewTokens(cfg, preview))

	switch *format {
	case "zone":
		for _, line := range rs.ZoneFile {
			fmt.Println(line)
		}
	case "json":
		printJSON(rs.Records)
	case "route53":
		batch, err := sesdomain.ChangeBatch(rs.Records, r53types.ChangeActionUpsert)
		if err != nil {
			fatalf("%v", err)
		}
		printJSON(batch)
	default:
		fatalf("unknown format %q (want zone, json, or route53)", *format)
	}
}

// previewTokens fills in whatever token material the preview file omits.
// SES DKIM tokens are 32-char lowercase strings; stripped UUIDs stand in
// well enough for previewing record shapes.
func previewTokens(cfg sesdomain.DomainConfig, preview *config.Preview) sesdomain.IdentityTokens {
	tokens := sesdomain.IdentityTokens{
		VerificationToken: preview.VerificationToken,
	}
	if tokens.VerificationToken == "" {
		tokens.VerificationToken = placeholderToken()
	}
	if cfg.EnableSend {
		tokens.DkimTokens = preview.DkimTokens
		for len(tokens.DkimTokens) < 3 {
			tokens.DkimTokens = append(tokens.DkimTokens, placeholderToken())
		}
		tokens.MailFromDomain = cfg.MailFromDomain()
	}
	return tokens
}

func placeholderToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	fmt.Println(string(data))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "dnspreview: "+format+"\n", args...)
	os.Exit(1)
}
