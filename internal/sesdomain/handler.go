package sesdomain

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go-v2/aws/arn"

	"github.com/ignite/cfn-ses-domain/internal/pkg/logger"
)

// missingPhysicalID is reported when an event fails before a physical
// resource identifier could be determined.
const missingPhysicalID = "MISSING"

// Reporter delivers the result of one invocation to CloudFormation. The
// production implementation PUTs to the event's presigned callback URL;
// tests capture the call instead.
type Reporter interface {
	Send(ctx context.Context, event cfn.Event, status cfn.StatusType, reason, physicalID string, data map[string]interface{}) error
}

// Handler is the lifecycle controller for one custom resource type. It owns
// no per-event state and is safe to reuse across warm invocations.
type Handler struct {
	// NewIdentityAPI yields an SES client scoped to the given region,
	// typically (*ClientPool).Get.
	NewIdentityAPI func(ctx context.Context, region string) (IdentityAPI, error)
	Reporter       Reporter
}

// Handle processes one stack lifecycle event and reports exactly once,
// SUCCESS or FAILED. The returned error is only a report-delivery failure;
// resource-level failures are carried inside the FAILED report.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) error {
	stackRegion, account, err := parseStackARN(event.StackID)
	if err != nil {
		logger.Error("unparseable StackId", "stack_id", event.StackID, "error", err)
		return h.Reporter.Send(ctx, event, cfn.StatusFailed, err.Error(), missingPhysicalID, nil)
	}

	// Resources created before v0.3 used the bare domain as their physical
	// ID. After an upgrade replaces such a resource, CloudFormation issues a
	// Delete against the old ID; acting on it would tear down the identity
	// the replacement now owns, so it is acknowledged without any SES calls.
	if event.RequestType == cfn.RequestDelete && !arn.IsARN(event.PhysicalResourceID) {
		domain, _ := NormalizeDomain(stringProp(event.ResourceProperties, "Domain"))
		logger.Info("ignoring Delete for legacy physical resource id",
			"physical_resource_id", event.PhysicalResourceID, "domain", domain)
		return h.Reporter.Send(ctx, event, cfn.StatusSuccess, "", event.PhysicalResourceID,
			map[string]interface{}{"Domain": domain})
	}

	cfg, err := ParseProperties(event.ResourceProperties, stackRegion)
	if err != nil {
		logger.Error("invalid resource properties", "error", err)
		return h.Reporter.Send(ctx, event, cfn.StatusFailed, err.Error(), missingPhysicalID, nil)
	}

	identityArn := identityARN(cfg.Region, account, cfg.Domain)
	physicalID := identityArn
	if event.RequestType == cfn.RequestDelete {
		physicalID = event.PhysicalResourceID
	}

	api, err := h.NewIdentityAPI(ctx, cfg.Region)
	if err != nil {
		logger.Error("creating SES client failed", "region", cfg.Region, "error", err)
		return h.Reporter.Send(ctx, event, cfn.StatusFailed, err.Error(), physicalID, nil)
	}

	reconciler := NewReconciler(api)
	var tokens IdentityTokens
	var rs RecordSet

	switch event.RequestType {
	case cfn.RequestDelete:
		err = reconciler.Deprovision(ctx, cfg)
		rs = EmptyRecordSet()
	default:
		tokens, err = reconciler.Provision(ctx, cfg)
		rs = SynthesizeRecords(cfg, tokens)
	}
	if err != nil {
		logger.Error("Error updating SES", "domain", cfg.Domain, "error", err)
		return h.Reporter.Send(ctx, event, cfn.StatusFailed, err.Error(), physicalID, nil)
	}

	data := map[string]interface{}{
		"Domain":            cfg.Domain,
		"Region":            cfg.Region,
		"Arn":               identityArn,
		"Route53RecordSets": rs.Records,
		"ZoneFileEntries":   rs.ZoneFile,
	}
	if tokens.VerificationToken != "" {
		data["VerificationToken"] = tokens.VerificationToken
	}
	if tokens.DkimTokens != nil {
		data["DkimTokens"] = tokens.DkimTokens
	}
	if tokens.MailFromDomain != "" {
		data["MailFromDomain"] = tokens.MailFromDomain
		data["MailFromMX"] = rs.MailFromMX
		data["MailFromSPF"] = rs.MailFromSPF
	}
	if rs.DMARC != "" {
		data["DMARC"] = rs.DMARC
	}
	if rs.ReceiveMX != "" {
		data["ReceiveMX"] = rs.ReceiveMX
	}

	return h.Reporter.Send(ctx, event, cfn.StatusSuccess, "", physicalID, data)
}

// identityARN builds the physical resource ID used since v0.3.
func identityARN(region, account, domain string) string {
	return fmt.Sprintf("arn:aws:ses:%s:%s:identity/%s", region, account, domain)
}

// parseStackARN extracts the invoking stack's region and account, the
// defaults for any event that does not declare its own Region.
func parseStackARN(stackID string) (region, account string, err error) {
	parsed, err := arn.Parse(stackID)
	if err != nil {
		return "", "", fmt.Errorf("parsing StackId %q: %w", stackID, err)
	}
	return parsed.Region, parsed.AccountID, nil
}
