package sim

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BryanSouza91/RxCar/control"
)

func load(t *testing.T, name string) Scenario {
	t.Helper()
	sc, err := LoadScenario(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("LoadScenario(%s): %v", name, err)
	}
	return sc
}

func run(t *testing.T, sc Scenario) Trace {
	t.Helper()
	trace, err := Run(sc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if errs := trace.Errors(); len(errs) > 0 {
		t.Fatalf("cycle at %dms failed: %v", errs[0].AtMs, errs[0].Err)
	}
	return trace
}

func TestSustainedForward(t *testing.T) {
	sc := load(t, "forward.yml")
	trace := run(t, sc)

	if trace.Motor.Direction != control.DirectionForward {
		t.Errorf("direction = %v, want forward", trace.Motor.Direction)
	}
	if trace.Motor.Speed != 255 {
		t.Errorf("speed = %d, want 255", trace.Motor.Speed)
	}
	if trace.Servo.Angle != 90 {
		t.Errorf("angle = %d, want 90", trace.Servo.Angle)
	}
	if len(trace.Cycles) != 2001 {
		t.Fatalf("ran %d cycles, want 2001", len(trace.Cycles))
	}
	for _, c := range trace.Cycles {
		if c.Report.Telemetry != 165 {
			t.Fatalf("at %dms telemetry = %d, want 165", c.AtMs, c.Report.Telemetry)
		}
	}
	if len(trace.Radio.Sent) != len(trace.Cycles) {
		t.Errorf("sent %d telemetry bytes over %d cycles", len(trace.Radio.Sent), len(trace.Cycles))
	}
	if _, ok := trace.FirstFailsafeAfter(0); ok {
		t.Error("failsafe engaged with a live link")
	}
	// Steering runs at most once per 15ms
	if max := 2000/15 + 1; trace.Servo.Writes > max {
		t.Errorf("servo written %d times, want at most %d", trace.Servo.Writes, max)
	}
}

func TestLinkLoss(t *testing.T) {
	sc := load(t, "linkloss.yml")
	trace := run(t, sc)

	at, ok := trace.FirstFailsafeAfter(1)
	if !ok {
		t.Fatal("failsafe never engaged")
	}
	// Last in-range packet at 990ms
	if at != 1990 {
		t.Errorf("failsafe engaged at %dms, want 1990ms", at)
	}
	if at-1000 > 1000 {
		t.Errorf("speed took %dms to drop after the link went out of range", at-1000)
	}
	if trace.Motor.Speed != 0 {
		t.Errorf("speed = %d, want 0", trace.Motor.Speed)
	}

	steered := 0
	for _, c := range trace.Cycles {
		if c.AtMs > 1000 && c.Report.Steered {
			steered++
		}
		if c.Report.Telemetry != 60 {
			t.Fatalf("at %dms telemetry = %d, want 60", c.AtMs, c.Report.Telemetry)
		}
	}
	if steered == 0 {
		t.Error("steering stopped updating during link loss")
	}
	if trace.Servo.Angle != 150 {
		t.Errorf("angle = %d, want 150", trace.Servo.Angle)
	}
}

func TestReversal(t *testing.T) {
	sc := load(t, "reversal.yml")
	trace := run(t, sc)

	committed := -1
	for _, c := range trace.Cycles {
		if c.AtMs >= 1000 && c.Report.Direction == control.DirectionReverse {
			committed = c.AtMs
			break
		}
		if c.AtMs >= 1000 && c.Report.MotorSpeed != 0 {
			t.Fatalf("at %dms speed = %d while the reversal is pending", c.AtMs, c.Report.MotorSpeed)
		}
	}
	if committed != 1500 {
		t.Errorf("reversal committed at %dms, want 1500ms", committed)
	}
	if trace.Motor.Reversals != 1 {
		t.Errorf("reversals = %d, want 1", trace.Motor.Reversals)
	}
	if final := trace.Final(); final.MotorSpeed != 255 || final.Direction != control.DirectionReverse {
		t.Errorf("final = %v/%d, want reverse/255", final.Direction, final.MotorSpeed)
	}
}

func TestRadioFIFOOverflow(t *testing.T) {
	r := &Radio{}
	for i := 0; i < 5; i++ {
		r.Deliver(control.Packet{Speed: uint16(i)})
	}
	if r.Dropped != 2 {
		t.Errorf("dropped = %d, want 2", r.Dropped)
	}
	if r.Available() {
		t.Error("available while not listening")
	}
}

func TestParseScenarioDefaults(t *testing.T) {
	sc, err := ParseScenario([]byte("name: idle\nduration_ms: 100\n"))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if sc.CycleMs != 1 {
		t.Errorf("cycle_ms = %d, want default 1", sc.CycleMs)
	}

	trace := run(t, sc)
	if final := trace.Final(); !final.Failsafe || final.MotorSpeed != 0 {
		t.Errorf("final = %+v, want failsafe with no transmitter", final)
	}
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "segments: [", "parse scenario"},
		{"no duration", "cycle_ms: 1\n", "duration_ms"},
		{"negative cycle", "cycle_ms: -1\nduration_ms: 10\n", "cycle_ms"},
		{"bad window", "duration_ms: 10\nsegments:\n  - {from_ms: 5, to_ms: 1, every_ms: 1}\n", "invalid window"},
		{"no period", "duration_ms: 10\nsegments:\n  - {from_ms: 0, to_ms: 1}\n", "every_ms"},
		{"raw range", "duration_ms: 10\nsegments:\n  - {from_ms: 0, to_ms: 1, every_ms: 1, speed: 2048}\n", "0..1023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")
	if _, err := LoadScenario(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want a not-exist error", err)
	}
}
