package model

// Segment is a window that yielded non-empty recognized text.
type Segment struct {
	StartMS int
	EndMS   int
	Text    string
}
