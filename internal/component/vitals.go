package component

// Health stores hit points. An entity at or below zero is culled.
type Health struct {
	Current int
	Max     int
}

// Lifespan counts down in seconds until automatic destruction.
type Lifespan struct {
	Remaining float64
}
