package dto

// QuestionCountsDTO partitions a test's questions by type: closed covers
// single- and multiple-choice, open covers open-ended.
type QuestionCountsDTO struct {
	Closed int `json:"closed"`
	Open   int `json:"open"`
	Total  int `json:"total"`
}

// TestMetadataDTO is one entry of the test catalog listing.
type TestMetadataDTO struct {
	Category       *string           `json:"category"`
	Scope          string            `json:"scope"`
	Version        string            `json:"version"`
	TestID         string            `json:"test_id"`
	QuestionCounts QuestionCountsDTO `json:"question_counts"`
}
