package debugui

// History is a fixed-size ring of samples for line plots.
type History struct {
	samples []float32
	offset  int
	filled  bool
}

// NewHistory creates a ring holding size samples.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, size)}
}

// Push records v, overwriting the oldest sample once the ring is full.
func (h *History) Push(v float32) {
	h.samples[h.offset] = v
	h.offset = (h.offset + 1) % len(h.samples)
	if h.offset == 0 {
		h.filled = true
	}
}

// Len returns the number of recorded samples, at most the ring size.
func (h *History) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.offset
}

// Samples returns the recorded samples oldest first.
func (h *History) Samples() []float32 {
	if !h.filled {
		out := make([]float32, h.offset)
		copy(out, h.samples[:h.offset])
		return out
	}

	out := make([]float32, len(h.samples))
	copy(out, h.samples[h.offset:])
	copy(out[len(h.samples)-h.offset:], h.samples[:h.offset])
	return out
}

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float32 {
	if h.Len() == 0 {
		return 0
	}
	return h.samples[(h.offset-1+len(h.samples))%len(h.samples)]
}

// Max returns the largest recorded sample, or 0 when empty.
func (h *History) Max() float32 {
	var m float32
	for i, v := range h.Samples() {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Mean returns the average of the recorded samples, or 0 when empty.
func (h *History) Mean() float32 {
	samples := h.Samples()
	if len(samples) == 0 {
		return 0
	}
	var sum float32
	for _, v := range samples {
		sum += v
	}
	return sum / float32(len(samples))
}
