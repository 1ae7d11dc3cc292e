package sesdomain

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// ChangeBatch converts a synthesized record set into a Route53 change batch
// applying the given action, for callers that push the records into a hosted
// zone directly instead of through a stack's RecordSetGroup.
func ChangeBatch(records []DnsRecord, action r53types.ChangeAction) (r53types.ChangeBatch, error) {
	changes := make([]r53types.Change, 0, len(records))
	for _, record := range records {
		ttl, err := strconv.ParseInt(record.TTL, 10, 64)
		if err != nil {
			return r53types.ChangeBatch{}, fmt.Errorf("record %s %s: invalid TTL %q: %w",
				record.Type, record.Name, record.TTL, err)
		}

		values := make([]r53types.ResourceRecord, 0, len(record.ResourceRecords))
		for _, v := range record.ResourceRecords {
			values = append(values, r53types.ResourceRecord{Value: aws.String(v)})
		}

		changes = append(changes, r53types.Change{
			Action: action,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name:            aws.String(record.Name),
				Type:            r53types.RRType(record.Type),
				TTL:             aws.Int64(ttl),
				ResourceRecords: values,
			},
		})
	}
	return r53types.ChangeBatch{Changes: changes}, nil
}
