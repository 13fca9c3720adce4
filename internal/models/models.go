package models

import "time"

// AnalysisItem is the classification outcome for one segment of the document.
// Category carries both axes (novelty vs. the sample agreement, overlap with
// the minimal requirements) and is never collapsed to a single tag.
type AnalysisItem struct {
	Text            string   `json:"text"`
	Category        []string `json:"category"`
	Description     string   `json:"description"`
	SampleDistance  *float64 `json:"sample_distance,omitempty"`
	SampleMatch     string   `json:"sample_match,omitempty"`
	MinimalDistance *float64 `json:"minimal_distance,omitempty"`
	MinimalMatch    string   `json:"minimal_match,omitempty"`
}

// Essentials holds the four structured facts expected in a minimally complete
// rental agreement. A nil field means the fact was not found in the text.
type Essentials struct {
	Vertragsparteien *string `json:"vertragsparteien"`
	Mietgegenstand   *string `json:"mietgegenstand"`
	Miete            *string `json:"miete"`
	Mietbeginn       *string `json:"mietbeginn"`

	// Error and Raw are set when the language service response could not be
	// parsed; the record shape is still returned to the caller.
	Error string `json:"error,omitempty"`
	Raw   string `json:"raw_response,omitempty"`
}

// AnalysisResult is the unit returned to callers and persisted by the API
// layer. Created once per document, never mutated.
type AnalysisResult struct {
	ID         string         `json:"id"`
	Results    []AnalysisItem `json:"results"`
	Essentials *Essentials    `json:"essentials"`
}

// DocumentInfo describes one stored analysis for listing endpoints.
type DocumentInfo struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
