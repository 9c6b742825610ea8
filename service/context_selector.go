package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/asknote/asknote-be/types"
)

// fallbackContextSize caps the excerpt sent when no paragraph contains the
// question, so the model always receives something to work with.
const fallbackContextSize = 3000

// pagePrefixSize is how much of a matched paragraph is used to locate the
// page it came from.
const pagePrefixSize = 100

var paragraphSplit = regexp.MustCompile(`\n\n+`)

// ContextResult is the excerpt selected for one question plus the pages it
// was drawn from, ascending and deduplicated.
type ContextResult struct {
	Context string
	Pages   []int
}

// SelectContext reduces a document to the text relevant to question.
// Paragraphs are matched by literal lowercase substring; when nothing
// matches, the head of the document is returned instead. Pure function,
// no failure mode.
func SelectContext(rawText string, pages []types.PageContent, question string) ContextResult {
	if strings.TrimSpace(rawText) == "" {
		return ContextResult{Context: "", Pages: []int{}}
	}

	searchTerm := strings.ToLower(strings.TrimSpace(question))

	paragraphs := paragraphSplit.Split(rawText, -1)
	matches := make([]string, 0)
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if strings.Contains(strings.ToLower(p), searchTerm) {
			matches = append(matches, p)
		}
	}

	context := ""
	if len(matches) > 0 {
		context = strings.Join(matches, "\n\n")
	} else {
		runes := []rune(rawText)
		if len(runes) > fallbackContextSize {
			runes = runes[:fallbackContextSize]
		}
		context = string(runes)
	}

	return ContextResult{
		Context: context,
		Pages:   attributePages(matches, pages),
	}
}

// attributePages finds, for every matched paragraph, the pages whose text
// contains the paragraph's leading characters. Paragraphs shorter than the
// prefix size are matched on their full length.
func attributePages(matches []string, pages []types.PageContent) []int {
	seen := make(map[int]bool)
	out := make([]int, 0)
	for _, match := range matches {
		prefix := match
		if runes := []rune(match); len(runes) > pagePrefixSize {
			prefix = string(runes[:pagePrefixSize])
		}
		for _, page := range pages {
			if seen[page.PageNum] {
				continue
			}
			if strings.Contains(page.Text, prefix) {
				seen[page.PageNum] = true
				out = append(out, page.PageNum)
			}
		}
	}
	sort.Ints(out)
	return out
}
