package elastic

import (
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"uni-analytics/backend/config"
)

// NewClient connects to Elasticsearch and verifies the cluster responds.
func NewClient(cfg *config.ElasticConfig, logger *zap.Logger) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create Elasticsearch client: %w", err)
	}

	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("ping Elasticsearch: %s", res.Status())
	}

	logger.Info("connected to Elasticsearch", zap.Strings("addresses", cfg.Addresses))

	return es, nil
}
