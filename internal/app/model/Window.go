package model

// Window is a contiguous span of the input audio, in milliseconds from
// the start of the recording. Consecutive windows may overlap.
type Window struct {
	StartMS int
	EndMS   int
}

func (w Window) DurationMS() int {
	return w.EndMS - w.StartMS
}
