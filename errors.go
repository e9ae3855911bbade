//go:build tinygo

package main

import (
	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
)

const (
	// ErrorCodeRxStartNumber is the starting number for receiver setup error codes.
	ErrorCodeRxStartNumber uint16 = 6100
)

const (
	ErrorCodeRxFailedToConfigureSPI tinygoerrors.ErrorCode = tinygoerrors.ErrorCode(iota + ErrorCodeRxStartNumber)
	ErrorCodeRxRadioNotResponding
	ErrorCodeRxFailedToOpenPipe
	ErrorCodeRxFailedToAttachServo
	ErrorCodeRxFailedToConfigurePWM
	ErrorCodeRxFailedToGetPWMChannel
	ErrorCodeRxInvalidBus
)
