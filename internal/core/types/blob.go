package types

// Blob is a raw object fetched from a blob store container.
type Blob struct {
	Name string
	Data []byte
}

// Sample is the JSON document stored in each training data blob.
type Sample struct {
	Features []float64 `json:"features"`
	Label    string    `json:"label"`
}
