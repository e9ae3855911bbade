package control

import "golang.org/x/exp/constraints"

// Constrain clamps value within min and max bounds.
func Constrain[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// MapRange maps a value from one range to another.
//
// The arithmetic is done in integers and truncates toward zero, so the result
// matches the transmitter side mapping bit for bit. The input is not clamped.
func MapRange[T constraints.Integer](value, fromMin, fromMax, toMin, toMax T) T {
	v := int64(value)
	return T((v-int64(fromMin))*(int64(toMax)-int64(toMin))/(int64(fromMax)-int64(fromMin)) + int64(toMin))
}

// mapSpeed converts the raw throttle reading to a signed speed in [MIN_SPEED, MAX_SPEED].
func mapSpeed(raw uint16) int16 {
	v := Constrain(int32(raw), MIN_RAW_VALUE, MAX_RAW_VALUE)
	return int16(MapRange(v, MIN_RAW_VALUE, MAX_RAW_VALUE, MIN_SPEED, MAX_SPEED))
}

// mapSteering converts the raw steering reading to a servo angle in degrees.
func mapSteering(raw uint16) int {
	v := Constrain(int(raw), MIN_RAW_VALUE, MAX_RAW_VALUE)
	return MapRange(v, MIN_RAW_VALUE, MAX_RAW_VALUE, MIN_STEERING_ANGLE, MAX_STEERING_ANGLE)
}

// abs16 returns the magnitude of a mapped speed as a motor duty value.
func abs16(v int16) uint8 {
	if v < 0 {
		v = -v
	}
	return uint8(Constrain(v, 0, MAX_SPEED))
}
