package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	redisclient "github.com/yungbote/learnpath-backend/internal/clients/redis"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// PlanService runs planning requests against a fixed catalog handle. The
// handle is immutable, so any number of Plan calls may run concurrently.
type PlanService struct {
	log     *logger.Logger
	cat     *catalog.Catalog
	planner *planner.Planner
	cache   redisclient.PlanCache
}

func NewPlanService(log *logger.Logger, cat *catalog.Catalog, p *planner.Planner, cache redisclient.PlanCache) *PlanService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PlanService{
		log:     log.With("service", "PlanService"),
		cat:     cat,
		planner: p,
		cache:   cache,
	}
}

func (s *PlanService) Catalog() *catalog.Catalog { return s.cat }

// Plan validates and executes one planning request. The cache, when
// configured, wraps the core; a hit skips the planner entirely and is
// logged as such.
func (s *PlanService) Plan(ctx context.Context, uc domain.UserContext) (*domain.PathResult, error) {
	requestID := uuid.NewString()
	log := s.log.With("request_id", requestID, "user_id", uc.UserID)

	if s.cache != nil {
		if res, ok := s.cache.Get(ctx, s.cat.Version(), uc); ok {
			log.Debug("plan served from cache")
			return res, nil
		}
	}

	res, err := s.planner.Plan(ctx, s.cat, uc)
	if err != nil {
		log.Warn("plan failed", "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, s.cat.Version(), uc, res)
	}
	return res, nil
}
