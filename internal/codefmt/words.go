package codefmt

// SplitWords splits an identifier into words based on character transitions.
// It detects word boundaries at:
//   - Uppercase letter after lowercase letter: "getID" -> "get" + "ID"
//   - Around underscores: "send_nowait" -> "send" + "_" + "nowait"
//   - Around digits: "file2name" -> "file" + "2" + "name"
func SplitWords(s string) []string {
	var words []string
	i := 0
	for i < len(s) {
		j := i + 1
		for ; j < len(s); j++ {
			var next byte
			if j != len(s)-1 {
				next = s[j+1]
			}
			if isWordBoundary(s[j-1], s[j], next) {
				break
			}
		}
		words = append(words, s[i:j])
		i = j
	}
	return words
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isWordBoundary detects word boundaries based on character transitions.
func isWordBoundary(prev, curr, next byte) bool {
	switch {
	case isLower(prev) && isUpper(curr):
		// camelCase
		return true
	case isUpper(prev) && isUpper(curr) && isLower(next):
		// "HTTPServer" -> "HTTP" + "Server"
		return true
	case (prev == '_') != (curr == '_'):
		return true
	case !isDigit(prev) && prev != '_' && isDigit(curr):
		return true
	case isDigit(prev) && !isDigit(curr) && curr != '_':
		return true
	}
	return false
}
