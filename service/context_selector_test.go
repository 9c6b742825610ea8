package service

import (
	"strings"
	"testing"

	"github.com/asknote/asknote-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectContextMatchingParagraphs(t *testing.T) {
	rawText := "The mitochondria is the powerhouse of the cell.\n\n" +
		"Photosynthesis converts light into chemical energy.\n\n" +
		"The cell membrane controls what enters the cell."

	result := SelectContext(rawText, nil, "powerhouse")

	assert.Equal(t, "The mitochondria is the powerhouse of the cell.", result.Context)
}

func TestSelectContextJoinsMatchesInOrder(t *testing.T) {
	rawText := "Alpha section about cells.\n\nBeta section about energy.\n\nGamma section about cells again."

	result := SelectContext(rawText, nil, "cells")

	require.Equal(t, "Alpha section about cells.\n\nGamma section about cells again.", result.Context)
}

func TestSelectContextCaseInsensitive(t *testing.T) {
	rawText := "PARIS is the CAPITAL of France.\n\nIt has many museums."

	result := SelectContext(rawText, nil, "the capital")

	assert.Equal(t, "PARIS is the CAPITAL of France.", result.Context)
}

func TestSelectContextFallbackShortText(t *testing.T) {
	rawText := "Nothing in here mentions the topic.\n\nNeither does this."

	result := SelectContext(rawText, nil, "quantum chromodynamics")

	assert.Equal(t, rawText, result.Context)
	assert.Empty(t, result.Pages)
}

func TestSelectContextFallbackTruncatesAt3000(t *testing.T) {
	rawText := strings.Repeat("a", 5000)

	result := SelectContext(rawText, nil, "no such term")

	assert.Len(t, result.Context, 3000)
	assert.Equal(t, rawText[:3000], result.Context)
}

func TestSelectContextEmptyText(t *testing.T) {
	result := SelectContext("", nil, "anything")

	assert.Equal(t, "", result.Context)
	assert.Empty(t, result.Pages)
}

func TestSelectContextPageAttribution(t *testing.T) {
	pages := []types.PageContent{
		{PageNum: 1, Text: "Paris is the capital of France."},
		{PageNum: 2, Text: "It has many museums."},
	}
	rawText := "Paris is the capital of France.\n\nIt has many museums."

	result := SelectContext(rawText, pages, "the capital")

	assert.Equal(t, "Paris is the capital of France.", result.Context)
	assert.Equal(t, []int{1}, result.Pages)
}

func TestSelectContextPagesSortedAndDeduplicated(t *testing.T) {
	pages := []types.PageContent{
		{PageNum: 1, Text: "cats are great. dogs are great."},
		{PageNum: 2, Text: "birds are great."},
	}
	rawText := "birds are great.\n\ncats are great.\n\ndogs are great."

	result := SelectContext(rawText, pages, "are great")

	assert.Equal(t, []int{1, 2}, result.Pages)
}

func TestSelectContextLongParagraphUsesPrefix(t *testing.T) {
	long := strings.Repeat("x", 150) + " banana"
	pages := []types.PageContent{
		// Page text contains only the first 100 characters of the paragraph.
		{PageNum: 3, Text: long[:120]},
	}

	result := SelectContext(long, pages, "banana")

	assert.Equal(t, []int{3}, result.Pages)
}
