package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/shresthasriv/ecom-nexora/internal/config"
)

const componentVersion = "1.0.0"

// Checks lists the probes for the configured backends. The catalog is an
// external dependency, so its failure degrades rather than fails the service.
func Checks(cfg *config.Config) []health.Config {

	var checks []health.Config

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		checks = append(checks, health.Config{
			Name:    "database",
			Timeout: 3 * time.Second,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	case config.StorageDriverMongo:
		checks = append(checks, health.Config{
			Name:    "mongo",
			Timeout: 3 * time.Second,
			Check: healthMongo.New(healthMongo.Config{
				DSN: cfg.Mongo.URI,
			}),
		})
	}

	if cfg.RedisConnect.Enabled {
		checks = append(checks, health.Config{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	checks = append(checks, health.Config{
		Name:      "catalog",
		Timeout:   5 * time.Second,
		SkipOnErr: true,
		Check: healthHttp.New(healthHttp.Config{
			URL:            strings.TrimRight(cfg.Catalog.BaseURL, "/") + "/products/1",
			RequestTimeout: 4 * time.Second,
		}),
	})

	return checks
}

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(Checks(cfg)...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
