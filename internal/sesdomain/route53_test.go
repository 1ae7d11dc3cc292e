package sesdomain

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeBatch(t *testing.T) {
	rs := SynthesizeRecords(sendConfig(), sendTokens())

	batch, err := ChangeBatch(rs.Records, r53types.ChangeActionUpsert)
	require.NoError(t, err)
	require.Len(t, batch.Changes, len(rs.Records))

	for i, change := range batch.Changes {
		record := rs.Records[i]
		assert.Equal(t, r53types.ChangeActionUpsert, change.Action)

		set := change.ResourceRecordSet
		require.NotNil(t, set)
		assert.Equal(t, record.Name, aws.ToString(set.Name))
		assert.Equal(t, r53types.RRType(record.Type), set.Type)
		assert.Equal(t, int64(1800), aws.ToInt64(set.TTL))
		require.Len(t, set.ResourceRecords, 1)
		assert.Equal(t, record.ResourceRecords[0], aws.ToString(set.ResourceRecords[0].Value))
	}
}

func TestChangeBatchInvalidTTL(t *testing.T) {
	records := []DnsRecord{{Type: "TXT", Name: "example.com.", TTL: "soon", ResourceRecords: []string{`"x"`}}}

	_, err := ChangeBatch(records, r53types.ChangeActionCreate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid TTL "soon"`)
}

func TestChangeBatchEmpty(t *testing.T) {
	batch, err := ChangeBatch(nil, r53types.ChangeActionDelete)
	require.NoError(t, err)
	assert.Empty(t, batch.Changes)
}
