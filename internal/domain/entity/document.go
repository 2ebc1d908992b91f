package entity

// Document wraps one chunk of the input text.
type Document struct {
	PageContent string
	// Index is the position of the chunk in the source text.
	Index int
}

func NewDocuments(chunks []string) []*Document {
	docs := make([]*Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, &Document{
			PageContent: chunk,
			Index:       i,
		})
	}
	return docs
}
