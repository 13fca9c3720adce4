package parser

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	s := NewSplitter()
	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n  \n"))
}

func TestSplit_SingleSentence(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Die monatliche Grundmiete beträgt 750,00 EUR.")
	require.Len(t, got, 1)
	assert.Equal(t, "Die monatliche Grundmiete beträgt 750,00 EUR.", got[0])
}

func TestSplit_TwoSentences(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Die Kündigungsfrist beträgt für beide Parteien drei Monate. Die Kündigung muss schriftlich erfolgen.")
	require.Len(t, got, 2)
	assert.Equal(t, "Die Kündigungsfrist beträgt für beide Parteien drei Monate.", got[0])
	assert.Equal(t, "Die Kündigung muss schriftlich erfolgen.", got[1])
}

func TestSplit_SectionMarkerStaysAttached(t *testing.T) {
	s := NewSplitter()
	got := s.Split("§3 Die Miete beträgt 750 EUR.")
	require.Len(t, got, 1)
	assert.Equal(t, "§3 Die Miete beträgt 750 EUR.", got[0])
}

func TestSplit_NumberedMarkerNotOrphaned(t *testing.T) {
	s := NewSplitter()
	got := s.Split("12. Der Mieter verpflichtet sich zur pünktlichen Zahlung der Miete.")
	require.Len(t, got, 1)
	assert.Equal(t, "12. Der Mieter verpflichtet sich zur pünktlichen Zahlung der Miete.", got[0])
}

func TestSplit_AbbreviationsAreNotBoundaries(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Die Kündigung erfolgt gem. Art. 5 Abs. 2 des Vertrages. Der Mieter zahlt die Miete bzw. Nebenkosten pünktlich.")
	require.Len(t, got, 2)
	assert.Equal(t, "Die Kündigung erfolgt gem. Art. 5 Abs. 2 des Vertrages.", got[0])
	assert.Equal(t, "Der Mieter zahlt die Miete bzw. Nebenkosten pünktlich.", got[1])
}

func TestSplit_NumberBeforePeriodIsNotBoundary(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Der Vertrag verweist auf Anlage Nr. 3. Weitere Anlagen bestehen nicht in diesem Vertrag.")
	require.Len(t, got, 1)
}

func TestSplit_CustomAbbreviations(t *testing.T) {
	s := NewSplitter()
	s.SetAbbreviations([]string{"xyz."})
	got := s.Split("Das steht im Dokument xyz. Der Rest folgt unten im Anhang des Vertrages.")
	require.Len(t, got, 1)
}

func TestSplit_UmlautStartsSentence(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Die Wohnung wird zum Wohnen überlassen. Änderungen bedürfen der Schriftform im Vertrag.")
	require.Len(t, got, 2)
	assert.True(t, unicode.IsUpper([]rune(got[1])[0]))
}

func TestSplit_ParagraphWithoutBoundary(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Mietvertrag zwischen den Parteien ohne Satzzeichen am Ende")
	require.Len(t, got, 1)
	assert.Equal(t, "Mietvertrag zwischen den Parteien ohne Satzzeichen am Ende.", got[0])
}

func TestSplit_PurelyNumericFragmentGetsNoPeriod(t *testing.T) {
	s := NewSplitter()
	s.MinSegment = 1
	got := s.Split("1234567890 12")
	require.Len(t, got, 1)
	assert.Equal(t, "1234567890 12", got[0])
}

func TestSplit_BlankParagraphsDroppedByDefault(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Die Miete ist monatlich im Voraus zu entrichten.\n\nDie Kaution beträgt drei Monatsmieten insgesamt.")
	require.Len(t, got, 2)
}

func TestSplit_BlankParagraphsKeptWithPolicy(t *testing.T) {
	s := NewSplitter()
	s.KeepBlank = true
	got := s.Split("Die Miete ist monatlich im Voraus zu entrichten.\n\nDie Kaution beträgt drei Monatsmieten insgesamt.")
	require.Len(t, got, 3)
	assert.Equal(t, "", got[1])
}

func TestSplit_ShortSegmentsDropped(t *testing.T) {
	s := NewSplitter()
	got := s.Split("Kurz titel\nDie Wohnung ist pfleglich zu behandeln und instand zu halten.")
	require.Len(t, got, 2) // "Kurz titel." is exactly 11 runes, survives
	s.MinSegment = 20
	got = s.Split("Kurz titel\nDie Wohnung ist pfleglich zu behandeln und instand zu halten.")
	require.Len(t, got, 1)
}

func TestSplit_NonEmptyInputNeverYieldsEmpty(t *testing.T) {
	s := NewSplitter()
	for _, input := range []string{"x", "ab", "§3", "...", "Wort"} {
		got := s.Split(input)
		assert.NotEmpty(t, got, "input %q", input)
	}
}

func TestSplit_NoCharacterLoss(t *testing.T) {
	s := NewSplitter()
	s.MinSegment = 1
	input := "§1 Mieträume: Der Vermieter vermietet die Wohnung. Das Mietverhältnis beginnt am 01.01.2023.\nDie Kaution beträgt drei Monatsmieten."
	got := s.Split(input)
	require.NotEmpty(t, got)

	strip := func(str string) string {
		var b strings.Builder
		for _, r := range str {
			if !unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	joined := strip(strings.Join(got, ""))
	// every non-whitespace input character survives, in order; the output
	// may additionally contain synthesized periods
	want := strip(input)
	wi := 0
	for _, r := range joined {
		if wi < len([]rune(want)) && r == []rune(want)[wi] {
			wi++
		}
	}
	assert.Equal(t, len([]rune(want)), wi, "output lost input characters")
}
