package telemetry

// TraceRecord is one simulation tick: the input it consumed and the state
// it produced.
type TraceRecord struct {
	Tick     uint64  `csv:"tick"`
	SimTime  float64 `csv:"sim_time"`
	Input    string  `csv:"input"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Rotation float64 `csv:"rotation"`
	VelX     float64 `csv:"vel_x"`
	VelY     float64 `csv:"vel_y"`
	DirX     float64 `csv:"dir_x"`
	DirY     float64 `csv:"dir_y"`
}
