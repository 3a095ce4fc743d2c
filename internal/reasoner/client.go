// Package reasoner provides the pluggable external implementation of the
// feasibility filter contract: a rule/ontology reasoning service invoked
// synchronously over HTTP. The core treats it as a black box returning the
// same (feasible, excluded) partition as the built-in rule evaluator.
package reasoner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Config struct {
	URL     string
	Timeout time.Duration
	// FallbackToRules selects the policy when the reasoner fails: fall
	// back to the built-in rule evaluator instead of surfacing the error.
	// Never silent either way; the fallback is logged.
	FallbackToRules bool
}

func LoadConfigFromEnv() Config {
	return Config{
		URL:             envutil.String("REASONER_URL", ""),
		Timeout:         envutil.Duration("REASONER_TIMEOUT", 2*time.Second),
		FallbackToRules: envutil.Bool("REASONER_FALLBACK_TO_RULES", true),
	}
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("reasoner: url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With("client", "reasoner"),
	}, nil
}

type filterRequest struct {
	CatalogVersion string                  `json:"catalog_version"`
	Objects        []domain.LearningObject `json:"objects"`
	Context        domain.UserContext      `json:"context"`
}

type filterResponse struct {
	Feasible []string           `json:"feasible"`
	Excluded []domain.Exclusion `json:"excluded"`
}

// Filter satisfies the planner.Filter contract. Any transport failure,
// deadline expiry or non-200 status maps to ReasonerUnavailable.
func (c *Client) Filter(ctx context.Context, cat *catalog.Catalog, uc domain.UserContext) ([]string, []domain.Exclusion, error) {
	payload, err := json.Marshal(filterRequest{
		CatalogVersion: cat.Version(),
		Objects:        cat.Objects(),
		Context:        uc,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reasoner: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("reasoner: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &planner.ReasonerUnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &planner.ReasonerUnavailableError{Cause: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out filterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, &planner.ReasonerUnavailableError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	if out.Excluded == nil {
		out.Excluded = []domain.Exclusion{}
	}
	return out.Feasible, out.Excluded, nil
}
