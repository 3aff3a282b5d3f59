package engine

// Tokenize splits a trimmed input line into whitespace-separated tokens.
// Double quotes toggle literal mode and are stripped; whitespace inside
// quotes stays part of the current token instead of ending it.
func Tokenize(line string) []string {
	var tokens []string
	var cur []byte
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && (c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'):
			if len(cur) > 0 {
				tokens = append(tokens, string(cur))
				cur = cur[:0]
			}
		default:
			cur = append(cur, c)
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}
