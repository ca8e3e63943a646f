package model

// TranscriptionResult is the outcome of one full pipeline run over a
// single input file.
type TranscriptionResult struct {
	Transcript     string
	Segments       []Segment
	TranscriptPath string
	SRTPath        string
	DurationMS     int
	WindowCount    int
	FailedWindows  int
}
