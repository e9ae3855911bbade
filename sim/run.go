package sim

import (
	"time"

	"github.com/BryanSouza91/RxCar/control"
)

// Epoch is the virtual clock time of the first cycle.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Cycle is the outcome of one simulated control cycle.
type Cycle struct {
	AtMs   int
	Report control.Report
	Err    error
}

// Trace is the result of a simulated run.
type Trace struct {
	Scenario string
	Cycles   []Cycle
	Radio    *Radio
	Motor    *Motor
	Servo    *Servo
}

// Final returns the report of the last cycle.
func (t Trace) Final() control.Report {
	if len(t.Cycles) == 0 {
		return control.Report{}
	}
	return t.Cycles[len(t.Cycles)-1].Report
}

// FirstFailsafeAfter returns the time of the first cycle at or after ms that
// had the failsafe engaged.
func (t Trace) FirstFailsafeAfter(ms int) (int, bool) {
	for _, c := range t.Cycles {
		if c.AtMs >= ms && c.Report.Failsafe {
			return c.AtMs, true
		}
	}
	return 0, false
}

// Errors returns the cycles that reported an error.
func (t Trace) Errors() []Cycle {
	var out []Cycle
	for _, c := range t.Cycles {
		if c.Err != nil {
			out = append(out, c)
		}
	}
	return out
}

// Run replays the scenario through a fresh controller.
func Run(sc Scenario) (Trace, error) {
	if err := sc.Validate(); err != nil {
		return Trace{}, err
	}

	var (
		radio = &Radio{}
		motor = &Motor{}
		servo = &Servo{}
		bus   = &Bus{Value: sc.Bus}
	)
	ctl := control.New(control.Ports{Radio: radio, Motor: motor, Steering: servo, Bus: bus})

	trace := Trace{
		Scenario: sc.Name,
		Cycles:   make([]Cycle, 0, sc.DurationMs/sc.CycleMs+1),
		Radio:    radio,
		Motor:    motor,
		Servo:    servo,
	}

	// Next delivery time of every segment
	next := make([]int, len(sc.Segments))
	for i, seg := range sc.Segments {
		next[i] = seg.FromMs
	}

	for ms := 0; ms <= sc.DurationMs; ms += sc.CycleMs {
		for i, seg := range sc.Segments {
			if ms > seg.ToMs || ms < next[i] {
				continue
			}
			radio.Deliver(seg.Packet())
			for next[i] <= ms {
				next[i] += seg.EveryMs
			}
		}

		report, err := ctl.Cycle(Epoch.Add(time.Duration(ms) * time.Millisecond))
		trace.Cycles = append(trace.Cycles, Cycle{AtMs: ms, Report: report, Err: err})
	}
	return trace, nil
}
