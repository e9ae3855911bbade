//go:build tinygo

package main

import (
	"machine"
	"time"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"

	"github.com/BryanSouza91/RxCar/control"
	"github.com/BryanSouza91/RxCar/led"
)

// Main program loop
func main() {
	time.Sleep(2 * time.Second)
	// Print startup message
	println("RxCar - Version", Version)
	println("A TinyGo nRF24L01 Receiver for RC Cars")
	println("Source: github.com/BryanSouza91/RxCar")

	// --- Hardware Setup ---
	hw, code := setup()
	if code != tinygoerrors.ErrorCodeNil {
		for {
			println("Setup failed, error code:", uint16(code))
			time.Sleep(time.Second)
		}
	}
	ctl := control.New(hw.ports)
	println("Hardware initialized.")

	// Configuring Watchdog Timer
	watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: WATCHDOG_TIMEOUT_MS,
	})
	watchdog.Start()

	// No packet has arrived yet, the car starts in failsafe
	failsafe := true
	failing := false
	println("Entering control loop...")
	for {
		now := time.Now()
		report, err := ctl.Cycle(now)

		// Only log state changes, the loop runs as fast as the radio allows
		if err != nil && !failing {
			println("Radio error:", err.Error())
		} else if err == nil && failing {
			println("Radio recovered.")
		}
		failing = err != nil

		if report.Failsafe != failsafe {
			if report.Failsafe {
				println("Link lost, entering FAILSAFE")
			} else {
				println("Link established.")
			}
			failsafe = report.Failsafe
		}

		hw.status.Set(led.ForLink(report.Failsafe, report.Gate == control.GatePending))
		hw.status.Update(now)

		watchdog.Update()
	}
}
