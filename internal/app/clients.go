package app

import (
	"fmt"

	"github.com/apexwear/motionstudio-backend/internal/clients/gateway"
	"github.com/apexwear/motionstudio-backend/internal/clients/identity"
	"github.com/apexwear/motionstudio-backend/internal/platform/gcp"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

type Clients struct {
	Gateway  gateway.Client
	Identity identity.Verifier
	Bucket   gcp.BucketService
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	gatewayClient, err := gateway.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gateway client: %w", err)
	}
	verifier, err := identity.NewVerifier(log, cfg.JWTSecretKey)
	if err != nil {
		return Clients{}, fmt.Errorf("init identity verifier: %w", err)
	}
	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bucket service: %w", err)
	}

	return Clients{
		Gateway:  gatewayClient,
		Identity: verifier,
		Bucket:   bucket,
	}, nil
}
