package controller

// Character is the ECS component that gives a body a controller, its
// proximity probe and its per-tick motion accumulator.
type Character struct {
	Controller Controller
	Sensor     ProximitySensor
	Motion     Motion

	// Last is the report of the most recent tick, kept for the debug panel.
	Last TickReport
	// Out is the motion flushed at the end of the most recent tick.
	Out MotionOutput
}
