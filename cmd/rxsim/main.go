// Bench simulator: replays a scenario file through the receiver control cycle
// and prints what the car would have done. Use this to check timing changes
// without a transmitter or a car.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/BryanSouza91/RxCar/sim"
)

func main() {
	path := flag.String("scenario", "sim/testdata/forward.yml", "scenario file to replay")
	every := flag.Int("every", 100, "print every Nth cycle (0 prints only the summary)")
	flag.Parse()

	sc, err := sim.LoadScenario(*path)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}

	trace, err := sim.Run(sc)
	if err != nil {
		log.Fatalf("run scenario: %v", err)
	}

	log.Printf("scenario %q: %d cycles of %dms", sc.Name, len(trace.Cycles), sc.CycleMs)
	for i, c := range trace.Cycles {
		if c.Err != nil {
			log.Printf("%6dms error: %v", c.AtMs, c.Err)
		}
		if *every <= 0 || i%*every != 0 {
			continue
		}
		r := c.Report
		log.Printf("%6dms mode=%d speed=%4d motor=%3d dir=%-7s gate=%-9s angle=%3d failsafe=%-5t telemetry=%#02x",
			c.AtMs, r.Mode, r.Speed, r.MotorSpeed, r.Direction, r.Gate, r.Angle, r.Failsafe, r.Telemetry)
	}

	final := trace.Final()
	log.Printf("final: dir=%s motor=%d angle=%d reversals=%d servo writes=%d dropped packets=%d",
		final.Direction, final.MotorSpeed, final.Angle, trace.Motor.Reversals, trace.Servo.Writes, trace.Radio.Dropped)

	if len(trace.Errors()) > 0 {
		os.Exit(1)
	}
}
