package reasoner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New("v1", []domain.LearningObject{
		{
			ID:                  "Q_1",
			Kind:                domain.KindQuestion,
			DurationMin:         5,
			RequiredLanguage:    "en",
			DeviceCompat:        []string{"desktop"},
			MediaBandwidthClass: domain.BandwidthLow,
			AccuracyStat:        0.8,
		},
		{
			ID:                  "L_2",
			Kind:                domain.KindLecture,
			DurationMin:         10,
			RequiredLanguage:    "en",
			DeviceCompat:        []string{"desktop"},
			MediaBandwidthClass: domain.BandwidthHigh,
			AccuracyStat:        0.9,
		},
	}, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func testUserContext() domain.UserContext {
	return domain.UserContext{
		UserID:        "u1",
		Language:      "en",
		Device:        "desktop",
		Bandwidth:     domain.BandwidthLow,
		MasteryLevel:  0.5,
		TimeBudgetMin: 30,
	}
}

func TestClientFilter(t *testing.T) {
	var gotReq filterRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(filterResponse{
			Feasible: []string{"Q_1"},
			Excluded: []domain.Exclusion{{LOID: "L_2", Reason: "insufficient bandwidth for media"}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{URL: srv.URL, Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	feasible, excluded, err := c.Filter(context.Background(), testCatalog(t), testUserContext())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	if gotReq.CatalogVersion != "v1" || len(gotReq.Objects) != 2 || gotReq.Context.UserID != "u1" {
		t.Fatalf("unexpected request payload %+v", gotReq)
	}
	if len(feasible) != 1 || feasible[0] != "Q_1" {
		t.Fatalf("unexpected feasible %v", feasible)
	}
	if len(excluded) != 1 || excluded[0].LOID != "L_2" {
		t.Fatalf("unexpected excluded %v", excluded)
	}
}

func TestClientMapsFailuresToUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(tc.handler)
		c, err := NewClient(Config{URL: srv.URL, Timeout: time.Second}, nil)
		if err != nil {
			t.Fatalf("%s: NewClient: %v", tc.name, err)
		}
		_, _, err = c.Filter(context.Background(), testCatalog(t), testUserContext())
		srv.Close()
		if !errors.Is(err, planner.ErrReasonerUnavailable) {
			t.Fatalf("%s: expected ErrReasonerUnavailable, got %v", tc.name, err)
		}
	}
}

func TestClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := NewClient(Config{URL: srv.URL, Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, _, err = c.Filter(context.Background(), testCatalog(t), testUserContext())
	if !errors.Is(err, planner.ErrReasonerUnavailable) {
		t.Fatalf("expected ErrReasonerUnavailable, got %v", err)
	}
}

func TestClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}, nil); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestWithFallbackUsesRulesWhenUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(Config{URL: srv.URL, Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	f := WithFallback(c, nil, nil)

	feasible, excluded, err := f.Filter(context.Background(), testCatalog(t), testUserContext())
	if err != nil {
		t.Fatalf("fallback Filter: %v", err)
	}
	// The built-in rule chain excludes the high-bandwidth lecture.
	if len(feasible) != 1 || feasible[0] != "Q_1" {
		t.Fatalf("unexpected feasible %v", feasible)
	}
	if len(excluded) != 1 || excluded[0].Reason != "insufficient bandwidth for media" {
		t.Fatalf("unexpected excluded %v", excluded)
	}
}

type erroringFilter struct{ err error }

func (e erroringFilter) Filter(context.Context, *catalog.Catalog, domain.UserContext) ([]string, []domain.Exclusion, error) {
	return nil, nil, e.err
}

func TestWithFallbackPassesOtherErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	f := WithFallback(erroringFilter{err: boom}, nil, nil)
	_, _, err := f.Filter(context.Background(), testCatalog(t), testUserContext())
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
}
