package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/ignite/cfn-ses-domain/internal/config"
	"github.com/ignite/cfn-ses-domain/internal/pkg/logger"
	"github.com/ignite/cfn-ses-domain/internal/sesdomain"
)

func main() {
	cfg := config.LoadHandler()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	// The pool outlives individual invocations so warm starts reuse clients.
	pool := sesdomain.NewClientPool(sesdomain.ClientPoolOptions{
		EndpointURL: cfg.SESEndpointURL,
		AccessKey:   cfg.AccessKey,
		SecretKey:   cfg.SecretKey,
	})

	h := &sesdomain.Handler{
		NewIdentityAPI: pool.Get,
		Reporter:       sesdomain.CloudFormationReporter{},
	}
	lambda.Start(h.Handle)
}
