package corpus

// MinimalRequirements returns the built-in clauses describing what a valid
// rental agreement must contain.
func MinimalRequirements() []string {
	return []string{
		"Der Mietvertrag muss die genaue Anschrift der Wohnung enthalten.",
		"Die Namen und Anschriften aller Mietparteien müssen angegeben sein.",
		"Die monatliche Miethöhe muss klar festgelegt sein.",
		"Die Mietkaution darf maximal drei Monatsmieten betragen.",
		"Nebenkosten müssen genau definiert sein.",
		"Die Kündigungsfrist muss gesetzeskonform sein (3 Monate Standardfrist).",
		"Der Beginn des Mietverhältnisses muss schriftlich festgehalten sein.",
		"Bei befristeten Mietverträgen muss der Grund der Befristung angegeben sein.",
		"Die Wohnfläche sollte genau angegeben sein.",
		"Regelungen zur Instandhaltung und Kleinreparaturen müssen enthalten sein.",
		"Haustierhaltung muss geregelt sein.",
		"Regelungen zu baulichen Veränderungen müssen vorhanden sein.",
		"Die Pflicht zur Schönheitsreparaturen muss klar definiert sein.",
	}
}

// SampleAgreement returns the built-in clauses of a typical rental
// agreement, used to flag unusual deviations.
func SampleAgreement() []string {
	return []string{
		"§1 Mieträume: Der Vermieter vermietet an den Mieter zu Wohnzwecken die Wohnung in der Musterstraße 123, 12345 Musterstadt, bestehend aus 3 Zimmern, Küche, Bad mit einer Gesamtwohnfläche von ca. 75 qm.",
		"§2 Mietdauer: Das Mietverhältnis beginnt am 01.01.2023 und läuft auf unbestimmte Zeit.",
		"§3 Miete: Die monatliche Grundmiete beträgt 750,00 EUR. Die Miete ist monatlich im Voraus, spätestens am dritten Werktag des Monats zu entrichten.",
		"§4 Nebenkosten: Zusätzlich zur Grundmiete zahlt der Mieter monatliche Vorauszahlungen für Betriebskosten in Höhe von 200,00 EUR.",
		"§5 Kaution: Der Mieter zahlt an den Vermieter eine Kaution in Höhe von 2.250,00 EUR (drei Monatsmieten).",
		"§6 Instandhaltung: Der Mieter hat die Mieträume und die gemeinschaftlichen Einrichtungen schonend und pfleglich zu behandeln.",
		"§7 Schönheitsreparaturen: Der Mieter übernimmt die Schönheitsreparaturen innerhalb der Wohnung auf eigene Kosten.",
		"§8 Kündigung: Die Kündigungsfrist beträgt für beide Parteien drei Monate. Die Kündigung muss schriftlich erfolgen.",
		"§9 Haustierhaltung: Die Haltung von Kleintieren ist erlaubt. Für andere Tiere ist die Erlaubnis des Vermieters einzuholen.",
		"§10 Bauliche Veränderungen: Bauliche Veränderungen dürfen nur mit schriftlicher Zustimmung des Vermieters vorgenommen werden.",
		"§11 Hausordnung: Die Hausordnung ist Bestandteil dieses Vertrages.",
		"§12 Schlüssel: Der Mieter erhält bei Einzug 3 Haustürschlüssel und 2 Wohnungsschlüssel.",
		"§13 Rückgabe der Mietsache: Bei Beendigung des Mietverhältnisses hat der Mieter die Mietsache vollständig geräumt und gereinigt zurückzugeben.",
	}
}
