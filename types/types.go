package types

// AudioDescriptor is the provider-ready audio produced by the fetcher.
// Channels and SampleRate describe the encoded MP3, not the source file.
type AudioDescriptor struct {
	Data       []byte
	Channels   int
	SampleRate int
	Duration   float64 // seconds
}

type TaskStatus string

const (
	StatusRunning TaskStatus = "RUNNING"
	StatusDone    TaskStatus = "DONE"
	StatusError   TaskStatus = "ERROR"
	StatusUnknown TaskStatus = "UNKNOWN"
)

// ParseTaskStatus maps a provider status string onto TaskStatus.
func ParseTaskStatus(s string) TaskStatus {
	switch s {
	case "NEW", "RUNNING":
		return StatusRunning
	case "DONE":
		return StatusDone
	case "ERROR", "CANCELED":
		return StatusError
	default:
		return StatusUnknown
	}
}

// Terminal reports whether no further polling should happen.
func (s TaskStatus) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// Task is a recognition task as last seen by the client.
// ResultFileID is set only when Status is StatusDone.
type Task struct {
	ID           string
	Status       TaskStatus
	ResultFileID string
}

// Segment is one row of the final table. Sentiment scores are nil when the
// provider returned no emotion result for the utterance.
type Segment struct {
	Text     string
	Start    string
	End      string
	Positive *float64
	Neutral  *float64
	Negative *float64
}

type Table []Segment
