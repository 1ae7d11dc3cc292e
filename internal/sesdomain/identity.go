package sesdomain

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/ignite/cfn-ses-domain/internal/pkg/logger"
)

// IdentityAPI is the slice of the classic SES API this resource drives.
// *ses.Client satisfies it; tests substitute a recording fake.
type IdentityAPI interface {
	VerifyDomainIdentity(ctx context.Context, params *ses.VerifyDomainIdentityInput, optFns ...func(*ses.Options)) (*ses.VerifyDomainIdentityOutput, error)
	VerifyDomainDkim(ctx context.Context, params *ses.VerifyDomainDkimInput, optFns ...func(*ses.Options)) (*ses.VerifyDomainDkimOutput, error)
	SetIdentityMailFromDomain(ctx context.Context, params *ses.SetIdentityMailFromDomainInput, optFns ...func(*ses.Options)) (*ses.SetIdentityMailFromDomainOutput, error)
	DeleteIdentity(ctx context.Context, params *ses.DeleteIdentityInput, optFns ...func(*ses.Options)) (*ses.DeleteIdentityOutput, error)
}

// Reconciler converges the remote SES identity state to a DomainConfig.
// Calls are sequential and unretried; the first failure aborts and its
// message surfaces verbatim to the caller.
type Reconciler struct {
	api IdentityAPI
}

// NewReconciler returns a Reconciler driving the given API client.
func NewReconciler(api IdentityAPI) *Reconciler {
	return &Reconciler{api: api}
}

// Provision registers the domain identity for a Create or Update event and
// captures the tokens SES hands back. When sending is disabled only the
// identity itself is verified; DKIM and the mail-from domain are skipped.
func (r *Reconciler) Provision(ctx context.Context, cfg DomainConfig) (IdentityTokens, error) {
	var tokens IdentityTokens

	verify, err := r.api.VerifyDomainIdentity(ctx, &ses.VerifyDomainIdentityInput{
		Domain: aws.String(cfg.Domain),
	})
	if err != nil {
		return tokens, err
	}
	tokens.VerificationToken = aws.ToString(verify.VerificationToken)

	if !cfg.EnableSend {
		return tokens, nil
	}

	dkim, err := r.api.VerifyDomainDkim(ctx, &ses.VerifyDomainDkimInput{
		Domain: aws.String(cfg.Domain),
	})
	if err != nil {
		return tokens, err
	}
	tokens.DkimTokens = dkim.DkimTokens

	mailFrom := cfg.MailFromDomain()
	if _, err := r.api.SetIdentityMailFromDomain(ctx, &ses.SetIdentityMailFromDomainInput{
		Identity:       aws.String(cfg.Domain),
		MailFromDomain: aws.String(mailFrom),
	}); err != nil {
		return tokens, err
	}
	tokens.MailFromDomain = mailFrom

	return tokens, nil
}

// Deprovision removes the domain identity for a Delete event. When sending
// was enabled it also clears the mail-from configuration; that cleanup is
// best-effort since the identity is already gone.
func (r *Reconciler) Deprovision(ctx context.Context, cfg DomainConfig) error {
	if _, err := r.api.DeleteIdentity(ctx, &ses.DeleteIdentityInput{
		Identity: aws.String(cfg.Domain),
	}); err != nil {
		return err
	}

	if cfg.EnableSend {
		if _, err := r.api.SetIdentityMailFromDomain(ctx, &ses.SetIdentityMailFromDomainInput{
			Identity:       aws.String(cfg.Domain),
			MailFromDomain: aws.String(""),
		}); err != nil {
			logger.Warn("clearing mail-from after identity delete failed",
				"domain", cfg.Domain, "error", err)
		}
	}
	return nil
}
