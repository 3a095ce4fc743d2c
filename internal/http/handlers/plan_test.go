package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/services"
)

func planRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	objects := []domain.LearningObject{
		{
			ID: "Q_1", Kind: domain.KindQuestion, DurationMin: 5,
			RequiredLanguage: "en", DeviceCompat: []string{"desktop"},
			MediaBandwidthClass: domain.BandwidthLow, AccuracyStat: 0.8,
		},
		{
			ID: "Q_2", Kind: domain.KindQuestion, DurationMin: 5, RequiredMastery: 0.9,
			RequiredLanguage: "en", DeviceCompat: []string{"desktop"},
			MediaBandwidthClass: domain.BandwidthLow, AccuracyStat: 0.8,
		},
	}
	cat, err := catalog.New("v1", objects, []domain.PrerequisiteEdge{{FromID: "Q_1", ToID: "Q_2"}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	log := logger.NewNop()
	svc := services.NewPlanService(log, cat, planner.New(planner.DefaultConfig(), nil, log), nil)
	h := NewPlanHandler(svc, log)

	r := gin.New()
	r.POST("/api/plan", h.CreatePlan)
	return r
}

func postPlan(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlan(t *testing.T) {
	r := planRouter(t)
	w := postPlan(t, r, domain.UserContext{
		UserID:        "u1",
		Language:      "en",
		Device:        "desktop",
		Bandwidth:     domain.BandwidthLow,
		MasteryLevel:  0.95,
		TimeBudgetMin: 60,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res domain.PathResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"START", "Q_1", "Q_2", "GOAL"}
	if len(res.PrimaryPath) != len(want) {
		t.Fatalf("unexpected path %v", res.PrimaryPath)
	}
	for i := range want {
		if res.PrimaryPath[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, res.PrimaryPath)
		}
	}
}

func TestCreatePlanInvalidContext(t *testing.T) {
	r := planRouter(t)
	w := postPlan(t, r, domain.UserContext{
		UserID:        "u1",
		Device:        "desktop",
		Bandwidth:     domain.BandwidthLow,
		MasteryLevel:  0.5,
		TimeBudgetMin: 60,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Error.Code != "invalid_context" {
		t.Fatalf("expected invalid_context, got %q", env.Error.Code)
	}
}

func TestCreatePlanPathNotFound(t *testing.T) {
	r := planRouter(t)
	// German learner against an all-English catalog: everything drops out.
	w := postPlan(t, r, domain.UserContext{
		UserID:        "u1",
		Language:      "de",
		Device:        "desktop",
		Bandwidth:     domain.BandwidthLow,
		MasteryLevel:  0.5,
		TimeBudgetMin: 60,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				ExcludedLOs []domain.Exclusion `json:"excluded_los"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Error.Code != "path_not_found" {
		t.Fatalf("expected path_not_found, got %q", env.Error.Code)
	}
	if len(env.Error.Details.ExcludedLOs) != 2 {
		t.Fatalf("expected both exclusions in details, got %v", env.Error.Details.ExcludedLOs)
	}
	for _, ex := range env.Error.Details.ExcludedLOs {
		if ex.Reason != "language mismatch" {
			t.Fatalf("expected language mismatch, got %q", ex.Reason)
		}
	}
}

func TestCreatePlanBadBody(t *testing.T) {
	r := planRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
