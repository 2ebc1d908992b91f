package entity

import "time"

// Summary is the result of one summarization request.
type Summary struct {
	Text    string
	Model   Model
	Chunks  int
	Elapsed time.Duration
}
