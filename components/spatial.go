package components

// Position is an item's world position. Y is up.
type Position struct {
	X, Y, Z float64
}

// Orientation holds how a surface item faces and hangs.
type Orientation struct {
	Tilt float64 `inspect:"angle"` // outward facing, radians about Y
	Hang float64 `inspect:"angle"` // pitch of the hanging cap
}
