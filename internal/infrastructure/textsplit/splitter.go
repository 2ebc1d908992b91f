package textsplit

import "unicode/utf8"

// DefaultChunkSize is the maximum number of characters per chunk.
const DefaultChunkSize = 4000

// Split cuts text into consecutive chunks of at most size characters.
// Joining the chunks gives back text unchanged. A non-positive size yields a single chunk.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		return []string{text}
	}

	chunks := make([]string, 0, (utf8.RuneCountInString(text)+size-1)/size)
	start, count := 0, 0
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])

	return chunks
}
