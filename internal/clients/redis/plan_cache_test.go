package redis

import (
	"strings"
	"testing"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

func TestCacheKey(t *testing.T) {
	uc := domain.UserContext{
		UserID:        "u1",
		Language:      "en",
		Device:        "desktop",
		Bandwidth:     domain.BandwidthLow,
		MasteryLevel:  0.5,
		TimeBudgetMin: 30,
	}

	first := cacheKey("v1", uc)
	if first != cacheKey("v1", uc) {
		t.Fatal("identical inputs must share a key")
	}
	if !strings.HasPrefix(first, "plan:v1:") {
		t.Fatalf("key missing version segment: %s", first)
	}

	if cacheKey("v2", uc) == first {
		t.Fatal("a new catalog version must invalidate old entries")
	}
	changed := uc
	changed.MasteryLevel = 0.6
	if cacheKey("v1", changed) == first {
		t.Fatal("a changed context must not hit the old entry")
	}
}
