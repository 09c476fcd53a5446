package dodge

// Obstacle is a single falling block. Lane and Speed are fixed at spawn;
// only Pos changes as time advances.
type Obstacle struct {
	Lane  int     // Lane index in [0, lane count)
	Speed float64 // World units per second
	Pos   float64 // Vertical offset of the top edge, growing downwards
}

// advance moves the obstacle by the distance covered in elapsedMS milliseconds.
func (o *Obstacle) advance(elapsedMS float64) {
	o.Pos += o.Speed * elapsedMS / 1000
}
