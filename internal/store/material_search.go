package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"uni-analytics/backend/config"
	apperrors "uni-analytics/backend/pkg/errors"
)

// materialSearch is the Elasticsearch-backed MaterialSearchStore.
type materialSearch struct {
	es      *elasticsearch.Client
	index   string
	size    int
	timeout time.Duration
	logger  *zap.Logger
}

// NewMaterialSearch creates the canonical MaterialSearchStore.
func NewMaterialSearch(es *elasticsearch.Client, index string, cfg *config.ReportConfig, logger *zap.Logger) MaterialSearchStore {
	return &materialSearch{
		es:      es,
		index:   index,
		size:    cfg.SearchSize,
		timeout: cfg.CallTimeout,
		logger:  logger,
	}
}

// Search runs a fuzzy multi-field match over the learning materials and
// returns the deduplicated class ids of the hits in relevance order.
// Name is boosted over course name over content body; fuzziness is AUTO so
// edit-distance tolerance scales with term length.
func (s *materialSearch) Search(ctx context.Context, term string) ([]int, error) {
	tctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":     term,
							"fields":    []string{"name^3", "course_name^2", "content"},
							"type":      "best_fields",
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"type": lectureType},
					},
				},
			},
		},
		"_source": []string{"material_id", "class_id"},
		"size":    s.size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, apperrors.NewStore("elasticsearch", "search materials", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(tctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, apperrors.NewStore("elasticsearch", "search materials", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewStore("elasticsearch", "search materials",
			fmt.Errorf("search returned %s", res.Status()))
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ClassID int `json:"class_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, apperrors.NewStore("elasticsearch", "decode search response", err)
	}

	ids := make([]int, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		ids = append(ids, hit.Source.ClassID)
	}
	ids = dedupOrdered(ids)

	s.logger.Debug("material search completed",
		zap.String("term", term),
		zap.Int("class_ids", len(ids)),
	)

	return ids, nil
}

// dedupOrdered removes duplicate ids preserving first-seen order.
func dedupOrdered(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
