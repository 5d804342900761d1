package corpus

import "fmt"

// SentenceTrees splits a stored parse forest into its top-level
// bracketed sentence trees. Text outside the outermost parentheses is
// ignored.
func SentenceTrees(forest string) []string {
	var out []string
	depth := 0
	start := -1
	for i, r := range forest {
		switch r {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, forest[start:i+1])
				start = -1
			}
		}
	}
	return out
}

// LeafTokens returns the terminal tokens of a bracketed tree. The first
// symbol after each opening parenthesis is a node label and is skipped.
func LeafTokens(tree string) []string {
	var out []string
	i, n := 0, len(tree)
	for i < n {
		switch c := tree[i]; {
		case c == '(':
			i++
			for i < n && tree[i] != '(' && tree[i] != ')' && !isSpace(tree[i]) {
				i++
			}
		case c == ')' || isSpace(c):
			i++
		default:
			j := i
			for j < n && tree[j] != '(' && tree[j] != ')' && !isSpace(tree[j]) {
				j++
			}
			out = append(out, tree[i:j])
			i = j
		}
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// formatTree wraps one sentence tree in its corpus metadata block. The
// ID-CORPUS value is the article id with the sentence index appended.
func formatTree(articleID, url string, index int, tree string) string {
	return fmt.Sprintf("((META (ID-CORPUS %s.%d) (URL %s)) %s)", articleID, index, url, tree)
}
