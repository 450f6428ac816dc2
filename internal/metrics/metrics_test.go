package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.GamesCreated.Inc()
	m.Applied("roll_dice")
	m.Applied("roll_dice")
	m.Rejected("place_road", "road_is_blocked")

	if got := testutil.ToFloat64(m.GamesCreated); got != 1 {
		t.Errorf("games created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ActionsApplied.WithLabelValues("roll_dice")); got != 2 {
		t.Errorf("roll_dice applied = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ActionsRejected.WithLabelValues("place_road", "road_is_blocked")); got != 1 {
		t.Errorf("place_road rejected = %v, want 1", got)
	}
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.GamesCreated.Inc()
	if got := testutil.ToFloat64(b.GamesCreated); got != 0 {
		t.Errorf("second registry saw %v games", got)
	}
	if n, err := testutil.GatherAndCount(a.Registry, "natak_games_created_total"); err != nil || n != 1 {
		t.Errorf("GatherAndCount = %d, %v", n, err)
	}
}
