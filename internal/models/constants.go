package models

const (
	// Category labels, two independent axes per segment.
	CategoryUnusual    = "unusual"
	CategoryMatchFound = "match_found"
	CategoryInvalid    = "invalid"
	CategoryValid      = "valid"
	CategoryMissing    = "fehlend"
)

const (
	// NoSentencesText is the sentinel entry emitted when a document yields
	// nothing analyzable. Callers always receive at least one entry.
	NoSentencesText        = "Keine Sätze zum Analysieren gefunden."
	NoSentencesDescription = "Das Dokument enthält keinen Text oder konnte nicht gelesen werden."

	UnreadableText = "Das Dokument konnte nicht gelesen werden."
)

const (
	OCRSystemPrompt = "You are an expert OCR system. Extract ALL text from the image exactly as it appears. Preserve line breaks. Answer only with the extracted text and nothing else."

	EssentialsSystemPrompt = `Du bist ein Assistent für die Analyse von Mietverträgen. Extrahiere aus dem folgenden Vertragstext die vier Eckdaten und antworte ausschließlich mit einem JSON-Objekt mit genau diesen Feldern: "vertragsparteien", "mietgegenstand", "miete", "mietbeginn". Jedes Feld ist ein String oder null, wenn die Angabe im Text nicht zu finden ist. Antworte ohne weitere Erklärungen.`
)
