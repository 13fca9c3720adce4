package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Abbreviations and ordinal markers that must not terminate a sentence.
// Tuned for German legal text; replaceable via SetAbbreviations.
var defaultAbbreviations = []string{
	"abs.", "art.", "aufl.", "bzgl.", "bzw.", "ca.", "d.h.", "dr.", "etc.",
	"evtl.", "gem.", "ggf.", "inkl.", "insb.", "lit.", "max.", "min.",
	"mtl.", "nr.", "o.ä.", "prof.", "rd.", "s.", "sog.", "str.", "u.a.",
	"usw.", "vgl.", "z.b.", "zzgl.",
}

// sectionMarkerRe matches fragments that are bare clause markers such as
// "§3", "§ 12", "3." or "(2)". Those stay attached to their clause text.
var sectionMarkerRe = regexp.MustCompile(`^§?\s*\(?\d+[a-z]?\)?[.):]?$`)

var punctuationFragmentRe = regexp.MustCompile(`[^.?!]+[.?!]*`)

// Splitter turns a normalized text blob into an ordered sequence of clause
// units. It is pure: no state is retained between calls, and Split never
// fails.
type Splitter struct {
	// MinFragment is the length below which a fragment is merged onto its
	// neighbor instead of being emitted on its own.
	MinFragment int
	// MinSegment drops segments shorter than this many runes. The drop is
	// skipped when it would empty a non-empty result.
	MinSegment int
	// KeepBlank emits empty paragraphs as explicit blank segments.
	KeepBlank bool

	abbrev map[string]struct{}
}

// NewSplitter returns a splitter with the default German configuration.
func NewSplitter() *Splitter {
	s := &Splitter{
		MinFragment: 3,
		MinSegment:  10,
	}
	s.SetAbbreviations(defaultAbbreviations)
	return s
}

// SetAbbreviations replaces the negative exception list. Entries are matched
// case-insensitively against the word ending at a candidate boundary.
func (s *Splitter) SetAbbreviations(list []string) {
	s.abbrev = make(map[string]struct{}, len(list))
	for _, a := range list {
		s.abbrev[strings.ToLower(a)] = struct{}{}
	}
}

// Split segments text into sentences. Empty input yields an empty sequence.
// For non-empty input the result is never empty: strategies degrade from
// sentence-aware splitting to punctuation splitting to raw lines.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			if s.KeepBlank {
				out = append(out, "")
			}
			continue
		}
		frags := s.splitSentences(para)
		if len(frags) == 0 {
			frags = splitOnPunctuation(para)
		}
		if len(frags) == 0 {
			frags = []string{strings.TrimSpace(para)}
		}
		frags = s.mergeShortFragments(frags)
		frags = synthesizePunctuation(frags)
		out = append(out, frags...)
	}
	if len(out) == 0 {
		// blank-only paragraphs with KeepBlank disabled; fall back to lines
		out = rawLineSplit(text)
	}

	filtered := out[:0:0]
	for _, seg := range out {
		if seg == "" || utf8.RuneCountInString(seg) >= s.MinSegment {
			filtered = append(filtered, seg)
		}
	}
	if len(filtered) == 0 {
		return out
	}
	return filtered
}

// splitSentences locates boundaries at [.?!] followed by whitespace followed
// by an uppercase letter, honoring the abbreviation exception list. Uppercase
// detection is unicode-aware, so Ä, Ö, Ü and other letters with diacritics
// count as a sentence start.
func (s *Splitter) splitSentences(para string) []string {
	runes := []rune(strings.TrimSpace(para))
	var frags []string
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		if !unicode.IsUpper(runes[j]) {
			continue
		}
		if r == '.' && s.isExceptionToken(lastToken(runes, i)) {
			continue
		}
		frag := strings.TrimSpace(string(runes[start : i+1]))
		if frag != "" {
			frags = append(frags, frag)
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		tail := strings.TrimSpace(string(runes[start:]))
		if tail != "" {
			frags = append(frags, tail)
		}
	}
	return frags
}

// lastToken returns the word ending at the period at index i, inclusive of
// the period, lowercased.
func lastToken(runes []rune, i int) string {
	k := i
	for k > 0 && !unicode.IsSpace(runes[k-1]) {
		k--
	}
	return strings.ToLower(string(runes[k : i+1]))
}

// isExceptionToken reports whether a period after this token must not be
// treated as a sentence boundary: known abbreviations, bare numbers,
// section markers and single-letter initials.
func (s *Splitter) isExceptionToken(tok string) bool {
	if _, ok := s.abbrev[tok]; ok {
		return true
	}
	bare := strings.TrimSuffix(tok, ".")
	bare = strings.TrimPrefix(bare, "§")
	if bare == "" {
		return true
	}
	if utf8.RuneCountInString(bare) == 1 {
		r, _ := utf8.DecodeRuneInString(bare)
		if unicode.IsLetter(r) {
			return true
		}
	}
	for _, r := range bare {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

// mergeShortFragments concatenates clause markers and sub-minimum fragments
// onto the following fragment so markers like "§3" never float as orphans.
func (s *Splitter) mergeShortFragments(frags []string) []string {
	var out []string
	carry := ""
	for _, f := range frags {
		if carry != "" {
			f = carry + " " + f
			carry = ""
		}
		if utf8.RuneCountInString(f) < s.MinFragment || sectionMarkerRe.MatchString(f) {
			carry = f
			continue
		}
		out = append(out, f)
	}
	if carry != "" {
		if len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + " " + carry
		} else {
			out = append(out, carry)
		}
	}
	return out
}

// synthesizePunctuation appends a period to fragments lacking terminal
// punctuation, unless they are purely numeric.
func synthesizePunctuation(frags []string) []string {
	for i, f := range frags {
		if f == "" {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(f)
		if strings.ContainsRune(".?!:;", last) {
			continue
		}
		if isNumericFragment(f) {
			continue
		}
		frags[i] = f + "."
	}
	return frags
}

func isNumericFragment(f string) bool {
	seen := false
	for _, r := range f {
		if unicode.IsDigit(r) {
			seen = true
			continue
		}
		if unicode.IsSpace(r) || strings.ContainsRune("§.,()-/", r) {
			continue
		}
		return false
	}
	return seen
}

func splitOnPunctuation(para string) []string {
	var frags []string
	for _, m := range punctuationFragmentRe.FindAllString(para, -1) {
		m = strings.TrimSpace(m)
		if m != "" {
			frags = append(frags, m)
		}
	}
	return frags
}

func rawLineSplit(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		out = []string{strings.TrimSpace(text)}
	}
	return out
}
