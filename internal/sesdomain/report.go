package sesdomain

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
)

// CloudFormationReporter delivers results to the event's presigned callback
// URL via the response machinery in aws-lambda-go.
type CloudFormationReporter struct{}

// Send PUTs one terminal response for the event. CloudFormation treats a
// missing response as a stack operation hang, so callers report exactly once
// per invocation.
func (CloudFormationReporter) Send(_ context.Context, event cfn.Event, status cfn.StatusType, reason, physicalID string, data map[string]interface{}) error {
	resp := cfn.NewResponse(&event)
	resp.Status = status
	resp.Reason = reason
	resp.PhysicalResourceID = physicalID
	resp.Data = data
	return resp.Send()
}
