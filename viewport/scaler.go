package viewport

// Scaler caches the scaling result for the current window. It recomputes
// only when the window size or the strategy changes, so per-frame reads are
// free.
type Scaler struct {
	GameW, GameH     int
	WindowW, WindowH int

	strategy Strategy
	result   Result
}

// New creates a scaler and computes the initial result.
func New(windowW, windowH, gameW, gameH int, s Strategy) *Scaler {
	sc := &Scaler{
		GameW:    gameW,
		GameH:    gameH,
		WindowW:  windowW,
		WindowH:  windowH,
		strategy: s,
	}
	sc.recompute()
	return sc
}

// Resize updates the window size. Returns true if the result was recomputed.
func (s *Scaler) Resize(windowW, windowH int) bool {
	if windowW == s.WindowW && windowH == s.WindowH {
		return false
	}
	s.WindowW = windowW
	s.WindowH = windowH
	s.recompute()
	return true
}

// SetStrategy switches the scaling strategy and recomputes.
func (s *Scaler) SetStrategy(st Strategy) {
	if st == s.strategy {
		return
	}
	s.strategy = st
	s.recompute()
}

// SetMode switches only the scaling mode.
func (s *Scaler) SetMode(m Mode) {
	st := s.strategy
	st.Mode = m
	s.SetStrategy(st)
}

// Strategy returns the active strategy.
func (s *Scaler) Strategy() Strategy {
	return s.strategy
}

// Result returns the cached result.
func (s *Scaler) Result() Result {
	return s.result
}

// WindowToGame converts window pixel coordinates to logical game units.
// Returns false for an empty result.
func (s *Scaler) WindowToGame(wx, wy float64) (gx, gy float64, ok bool) {
	r := s.result
	if r.Empty() {
		return 0, 0, false
	}
	gx = (wx - r.OffsetX) / r.Factor
	gy = (wy - r.OffsetY) / r.Factor
	return gx, gy, true
}

func (s *Scaler) recompute() {
	s.result = Compute(s.WindowW, s.WindowH, s.GameW, s.GameH, s.strategy)
}
