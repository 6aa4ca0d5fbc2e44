package timing

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	x := 0
	for time.Now().Before(deadline) {
		x++
	}
	_ = x
}

func TestUserTimeAdvances(t *testing.T) {
	before, err := UserTime()
	if err != nil {
		t.Fatalf("UserTime: %v", err)
	}
	spin(30 * time.Millisecond)
	after, err := UserTime()
	if err != nil {
		t.Fatalf("UserTime: %v", err)
	}
	if after < before {
		t.Errorf("user time went backwards: %v -> %v", before, after)
	}
}

func TestCyclesMonotonic(t *testing.T) {
	a := Cycles()
	spin(time.Millisecond)
	b := Cycles()
	if b <= a {
		t.Errorf("Cycles did not advance: %d -> %d", a, b)
	}
	if CounterName() == "" {
		t.Error("CounterName is empty")
	}
}

func TestMeasure(t *testing.T) {
	called := false
	s, err := Measure(func() {
		called = true
		spin(5 * time.Millisecond)
	})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if !called {
		t.Fatal("fn not called")
	}
	if s.Cycles == 0 {
		t.Error("Cycles = 0 for a 5ms spin")
	}
	if s.Wall < 5*time.Millisecond {
		t.Errorf("Wall = %v, want >= 5ms", s.Wall)
	}
	if s.UserMicros < 0 {
		t.Errorf("UserMicros = %d, want >= 0", s.UserMicros)
	}
}

func TestSampleMin(t *testing.T) {
	a := Sample{UserMicros: 5, Cycles: 100, Wall: time.Second}
	b := Sample{UserMicros: 7, Cycles: 90, Wall: time.Millisecond}
	want := Sample{UserMicros: 5, Cycles: 90, Wall: time.Millisecond}
	if got := a.Min(b); got != want {
		t.Errorf("Min = %+v, want %+v", got, want)
	}
}

func TestMustMeasure_FatalOnClockFailure(t *testing.T) {
	errClock := errors.New("getrusage: EFAULT")
	userClock = func() (time.Duration, error) { return 0, errClock }
	defer func() { userClock = UserTime }()

	var code int
	Exit = func(c int) { code = c }
	defer func() { Exit = os.Exit }()

	core, logs := observer.New(zap.ErrorLevel)
	MustMeasure(zap.New(core), "naive_rotate", func() {})

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["measuring"] != "naive_rotate" {
		t.Errorf("measuring = %v, want naive_rotate", fields["measuring"])
	}
	if msg, _ := fields["error"].(string); !strings.Contains(msg, errClock.Error()) {
		t.Errorf("error = %v, want it to contain %q", fields["error"], errClock)
	}
}

func TestMustMeasure_OK(t *testing.T) {
	Exit = func(int) { t.Fatal("Exit called") }
	defer func() { Exit = os.Exit }()

	ran := false
	MustMeasure(nil, "noop", func() { ran = true })
	if !ran {
		t.Error("fn not called")
	}
}

func TestMeasure_WrapsClockError(t *testing.T) {
	errClock := errors.New("getrusage: EFAULT")
	userClock = func() (time.Duration, error) { return 0, errClock }
	defer func() { userClock = UserTime }()

	_, err := Measure(func() {})
	if !errors.Is(err, errClock) {
		t.Errorf("Measure error = %v, want it to wrap %v", err, errClock)
	}
}
