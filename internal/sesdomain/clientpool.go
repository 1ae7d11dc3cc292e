package sesdomain

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// ClientPoolOptions tune how SES clients are built. All fields are optional;
// the zero value uses the default credential chain and endpoints.
type ClientPoolOptions struct {
	// EndpointURL overrides the SES endpoint, e.g. for LocalStack.
	EndpointURL string
	// AccessKey/SecretKey switch the pool to static credentials when both
	// are set (otherwise the default chain applies, i.e. the Lambda role).
	AccessKey string
	SecretKey string
}

// ClientPool caches one SES client per region for reuse across warm Lambda
// invocations. Clients are stateless with respect to individual events, so
// sharing them is safe; construction is guarded by a single mutex.
type ClientPool struct {
	opts    ClientPoolOptions
	mu      sync.Mutex
	clients map[string]*ses.Client
}

// NewClientPool returns an empty pool; clients are built lazily on first
// request for a region.
func NewClientPool(opts ClientPoolOptions) *ClientPool {
	return &ClientPool{opts: opts, clients: make(map[string]*ses.Client)}
}

// Get returns the cached SES client for region, building it on first use.
func (p *ClientPool) Get(ctx context.Context, region string) (IdentityAPI, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[region]; ok {
		return client, nil
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if p.opts.AccessKey != "" && p.opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.opts.AccessKey, p.opts.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for region %s: %w", region, err)
	}

	client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		if p.opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(p.opts.EndpointURL)
		}
	})
	p.clients[region] = client
	return client, nil
}
