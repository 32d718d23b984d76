package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Score bands; lower is better
const (
	scoreExact       = 0
	scorePrefix      = 10
	scorePartial     = 20
	scoreInToken     = 50
	scoreTypo        = 100
	scoreSubstring   = 150
	scoreSubsequence = 200
	extraWordPenalty = 5
)

// FuzzyMatch represents a search match result
type FuzzyMatch struct {
	Index          int   // Index in source slice
	Score          int   // Match score (lower = better)
	MatchedIndexes []int // Rune positions that matched (for highlighting)
}

// FuzzySearch performs token-based fuzzy matching for movie titles.
//
//  1. Every query word must match some title word (any order)
//  2. Words match exactly, by prefix, inside the word, or within a
//     length-dependent number of typos
//  3. Titles no word matched are tried as a subsequence of the whole
//     query, so "lotr" finds "The Lord of the Rings"
//
// Returns matches sorted by score (lower = better), then shorter titles.
func FuzzySearch(query string, titles []string) []FuzzyMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []FuzzyMatch
	matched := make(map[int]bool)

	for i, title := range titles {
		if match, ok := matchTitle(title, queryTokens, i); ok {
			matches = append(matches, match)
			matched[i] = true
		}
	}

	compact := strings.Join(tokenTexts(queryTokens), "")
	for rank, m := range fuzzy.FindFrom(compact, titleSource(titles)) {
		if matched[m.Index] {
			continue
		}
		matches = append(matches, FuzzyMatch{
			Index:          m.Index,
			Score:          scoreSubsequence + rank,
			MatchedIndexes: runeIndexes(m.Str, m.MatchedIndexes),
		})
	}

	sortMatches(matches, titles)
	return matches
}

// titleSource adapts a title slice to fuzzy.Source
type titleSource []string

func (t titleSource) String(i int) string { return t[i] }
func (t titleSource) Len() int            { return len(t) }

// Token represents a word and its rune position in the original string
type Token struct {
	Text  string // Lowercase text
	Start int
	End   int // Exclusive
}

// tokenize splits text into word tokens, tracking positions
func tokenize(text string) []Token {
	var tokens []Token
	runes := []rune(strings.ToLower(text))

	inWord := false
	wordStart := 0

	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r)

		if isWordChar && !inWord {
			wordStart = i
			inWord = true
		} else if !isWordChar && inWord {
			tokens = append(tokens, Token{Text: string(runes[wordStart:i]), Start: wordStart, End: i})
			inWord = false
		}
	}

	if inWord {
		tokens = append(tokens, Token{Text: string(runes[wordStart:]), Start: wordStart, End: len(runes)})
	}

	return tokens
}

func tokenTexts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}

// TokenMatch represents how a query token matched a title
type TokenMatch struct {
	Score          int // Lower = better; negative means no match
	MatchedIndexes []int
}

// matchTitle attempts to match all query tokens against the title
func matchTitle(title string, queryTokens []Token, index int) (FuzzyMatch, bool) {
	lowerTitle := strings.ToLower(title)
	titleTokens := tokenize(title)

	// Each title token can satisfy only one query token
	used := make([]bool, len(titleTokens))

	var allMatched []int
	totalScore := 0

	for _, qt := range queryTokens {
		best, bestIdx := findBestTokenMatch(qt, titleTokens, lowerTitle, used)
		if best.Score < 0 {
			return FuzzyMatch{}, false
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
		}
		totalScore += best.Score
		allMatched = append(allMatched, best.MatchedIndexes...)
	}

	if extra := len(titleTokens) - len(queryTokens); extra > 0 {
		totalScore += extra * extraWordPenalty
	}

	return FuzzyMatch{
		Index:          index,
		Score:          totalScore,
		MatchedIndexes: dedupeAndSort(allMatched),
	}, true
}

// findBestTokenMatch finds the best matching unused title token for a query token
func findBestTokenMatch(qt Token, titleTokens []Token, lowerTitle string, used []bool) (TokenMatch, int) {
	best := TokenMatch{Score: -1}
	bestIdx := -1

	for i, tt := range titleTokens {
		if used[i] {
			continue
		}
		m := matchTokenToToken(qt.Text, tt)
		if m.Score >= 0 && (best.Score < 0 || m.Score < best.Score) {
			best = m
			bestIdx = i
		}
	}

	// Fall back to a substring anywhere, e.g. across punctuation ("spider-man")
	if best.Score < 0 {
		if m := matchSubstring(qt.Text, lowerTitle); m.Score >= 0 {
			return m, -1
		}
	}

	return best, bestIdx
}

// matchTokenToToken matches a query token against a title token
func matchTokenToToken(query string, tt Token) TokenMatch {
	title := tt.Text
	qLen := utf8.RuneCountInString(query)

	switch {
	case query == title:
		return TokenMatch{Score: scoreExact, MatchedIndexes: makeIndexRange(tt.Start, tt.End)}
	case strings.HasPrefix(title, query):
		return TokenMatch{Score: scorePrefix, MatchedIndexes: makeIndexRange(tt.Start, tt.Start+qLen)}
	case strings.HasPrefix(query, title):
		return TokenMatch{Score: scorePartial, MatchedIndexes: makeIndexRange(tt.Start, tt.End)}
	}

	if idx := strings.Index(title, query); idx >= 0 {
		start := tt.Start + utf8.RuneCountInString(title[:idx])
		return TokenMatch{Score: scoreInToken + idx, MatchedIndexes: makeIndexRange(start, start+qLen)}
	}

	if maxTypos := allowedTypos(qLen); maxTypos > 0 {
		if dist := fuzzysearch.LevenshteinDistance(query, title); dist <= maxTypos {
			return TokenMatch{Score: scoreTypo + dist*20, MatchedIndexes: makeIndexRange(tt.Start, tt.End)}
		}
	}

	return TokenMatch{Score: -1}
}

// matchSubstring finds query as a substring anywhere in the title
func matchSubstring(query, lowerTitle string) TokenMatch {
	idx := strings.Index(lowerTitle, query)
	if idx < 0 {
		return TokenMatch{Score: -1}
	}
	runeIdx := utf8.RuneCountInString(lowerTitle[:idx])
	return TokenMatch{
		Score:          scoreSubstring + runeIdx,
		MatchedIndexes: makeIndexRange(runeIdx, runeIdx+utf8.RuneCountInString(query)),
	}
}

// allowedTypos returns the number of typos allowed for a word length:
// 1-3 runes none, 4-6 one, 7+ two
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// runeIndexes converts byte offsets into s to rune offsets
func runeIndexes(s string, byteIdx []int) []int {
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if b <= len(s) {
			out = append(out, utf8.RuneCountInString(s[:b]))
		}
	}
	return out
}

func makeIndexRange(start, end int) []int {
	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

func dedupeAndSort(indexes []int) []int {
	if len(indexes) == 0 {
		return indexes
	}
	seen := make(map[int]bool, len(indexes))
	result := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}
	sort.Ints(result)
	return result
}

// sortMatches sorts by score (lower = better), then by title length
func sortMatches(matches []FuzzyMatch, titles []string) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return len(titles[a.Index]) < len(titles[b.Index])
	})
}
