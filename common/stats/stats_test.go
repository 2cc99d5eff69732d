package stats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestScopedNames(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope("foo", "bar").Counter("baz").Inc(1)
	stat.Counter("foo", "bar", "baz").Inc(1)

	if count := stat.Scope("foo").Counter("bar", "baz").Count(); count != 2 {
		t.Errorf("expected scoped and variadic names to collapse to one counter, got %d", count)
	}
}

func TestSlashEscaping(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Counter("a/b").Inc(1)
	if count := stat.Counter("a_SLASH_b").Count(); count != 1 {
		t.Errorf("expected slash in name element to be escaped, got %d", count)
	}
}

func TestGaugeAndLatency(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Gauge("g").Update(42)
	if v := stat.Gauge("g").Value(); v != 42 {
		t.Errorf("expected gauge 42, got %d", v)
	}

	stat.Latency("l_ms").RecordDuration(5 * time.Millisecond)
	var snapshot map[string]interface{}
	if err := json.Unmarshal(stat.Render(false), &snapshot); err != nil {
		t.Fatalf("render should be valid json: %v", err)
	}
	if _, ok := snapshot["l_ms"]; !ok {
		t.Errorf("expected rendered latency, got %v", snapshot)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	stat := NilStatsReceiver()
	stat.Scope("x").Counter("c").Inc(1)
	stat.Gauge("g").Update(1)
	stat.Latency("l").Time().Stop()
	if stat.Counter("c").Count() != 0 {
		t.Error("nil receiver should not record")
	}
}
