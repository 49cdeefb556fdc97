package engine

// UniformGrid returns n points starting at start and spaced by step.
//
// Points are computed as start + k*step rather than by accumulation so that the
// forward and inverse transforms rebuild bit-identical grids from the same
// three scalars.
func UniformGrid(start, step float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	grid := make([]float64, n)
	for k := range n {
		grid[k] = start + float64(k)*step
	}
	return grid
}
