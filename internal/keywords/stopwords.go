package keywords

// stopWords is the fixed English exclusion list. Entries are lower case; the
// ranker lower-cases content before lookup so membership is an exact match.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "that", "have", "for", "not", "with", "you",
		"this", "but", "his", "from", "they", "she", "which", "there",
		"were", "been", "their", "what", "when", "your", "can", "said",
		"who", "will", "would", "all", "each", "about", "other", "into",
		"more", "some", "could", "them", "these", "than", "then", "now",
		"look", "only", "come", "its", "over", "think", "also", "back",
		"after", "use", "two", "how", "our", "work", "first", "well",
		"way", "even", "new", "want", "because", "any", "give",
		"most", "us", "are", "was", "is", "on", "in", "it", "of",
		"a", "to", "as", "at", "by", "an",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether word, already lower-cased, is in the stop-word set.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// StopWords returns a copy of the stop-word list.
func StopWords() []string {
	out := make([]string, 0, len(stopWords))
	for w := range stopWords {
		out = append(out, w)
	}
	return out
}
