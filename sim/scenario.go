// Package sim replays scripted transmitter traffic through the receiver
// control cycle on virtual hardware and a virtual clock, for bench testing
// without a car.
package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BryanSouza91/RxCar/control"
)

// Scenario describes a simulated run.
//
// Example:
//
//	name: full forward
//	cycle_ms: 1
//	duration_ms: 2000
//	bus: 165
//	segments:
//	  - from_ms: 0
//	    to_ms: 2000
//	    every_ms: 20
//	    flip_switch: 1
//	    speed: 1023
//	    steering: 512
//	    in_range: true
type Scenario struct {
	Name       string    `yaml:"name"`
	CycleMs    int       `yaml:"cycle_ms"`    // simulated time between control cycles
	DurationMs int       `yaml:"duration_ms"` // total simulated time
	Bus        uint8     `yaml:"bus"`         // value presented on the telemetry bus
	Segments   []Segment `yaml:"segments"`
}

// Segment is a stream of identical packets sent by the transmitter.
type Segment struct {
	FromMs     int    `yaml:"from_ms"`
	ToMs       int    `yaml:"to_ms"`
	EveryMs    int    `yaml:"every_ms"`
	FlipSwitch uint8  `yaml:"flip_switch"`
	Speed      uint16 `yaml:"speed"`
	Steering   uint16 `yaml:"steering"`
	InRange    bool   `yaml:"in_range"`
}

// Packet returns the packet the segment sends.
func (s Segment) Packet() control.Packet {
	return control.Packet{
		FlipSwitch: s.FlipSwitch,
		Speed:      s.Speed,
		Steering:   s.Steering,
		InRange:    s.InRange,
	}
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.CycleMs == 0 {
		sc.CycleMs = 1
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks the scenario for values the simulation cannot run.
func (sc Scenario) Validate() error {
	var errs []error
	if sc.CycleMs <= 0 {
		errs = append(errs, fmt.Errorf("cycle_ms must be positive, got %d", sc.CycleMs))
	}
	if sc.DurationMs <= 0 {
		errs = append(errs, fmt.Errorf("duration_ms must be positive, got %d", sc.DurationMs))
	}
	for i, seg := range sc.Segments {
		if seg.FromMs < 0 || seg.ToMs < seg.FromMs {
			errs = append(errs, fmt.Errorf("segment %d: invalid window %d..%d", i, seg.FromMs, seg.ToMs))
		}
		if seg.EveryMs <= 0 {
			errs = append(errs, fmt.Errorf("segment %d: every_ms must be positive, got %d", i, seg.EveryMs))
		}
		if seg.Speed > control.MAX_RAW_VALUE || seg.Steering > control.MAX_RAW_VALUE {
			errs = append(errs, fmt.Errorf("segment %d: speed and steering must be within 0..%d", i, control.MAX_RAW_VALUE))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid scenario %q: %w", sc.Name, errors.Join(errs...))
	}
	return nil
}
