package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	lastIncr     int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.lastIncr = increment

	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("TEST")

	year := time.Now().Format("2006")

	num, err := svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != fmt.Sprintf("TEST-%s-00001", year) {
		t.Errorf("expected TEST-%s-00001, got %s", year, num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != fmt.Sprintf("TEST-%s-00002", year) {
		t.Errorf("expected TEST-%s-00002, got %s", year, num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("REQ")
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	// First call allocates a range of 10; subsequent calls must not hit the DB.
	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(ctx, cfg, opts, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := formatNumber(cfg, time.Now(), int64(i))
		if num != expected {
			t.Errorf("expected %s, got %s", expected, num)
		}
	}

	if q.lastIncr != 10 {
		t.Errorf("expected range allocation of 10, got %d", q.lastIncr)
	}

	// 11th call allocates the next range.
	num, err := svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ParseNumber(num); got != 11 {
		t.Errorf("expected 11, got %d (%s)", got, num)
	}
}

func TestFormatNumber_NoYear(t *testing.T) {
	cfg := Config{Prefix: "X", PadWidth: 3, ResetPeriod: "never"}
	got := formatNumber(cfg, time.Now(), 7)
	if got != "X-007" {
		t.Errorf("expected X-007, got %s", got)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"BILL-2026-00042", 42},
		{"X-007", 7},
		{"garbage", -1},
		{"BILL-2026-", -1},
		{"BILL-2026-abc", -1},
		{"", -1},
	}
	for _, tc := range cases {
		if got := ParseNumber(tc.in); got != tc.want {
			t.Errorf("ParseNumber(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
