package chapter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"inkwell/internal/domain/models"
)

const (
	bodyTitle     = "正文"
	prologueTitle = "序章"
)

// Heading patterns, most specific first. Each matches only at a line start
// and captures to end of line.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^第[一二三四五六七八九十百千]+章[^\n]*`), // CJK numeral headings
	regexp.MustCompile(`(?m)^第[0-9]+章[^\n]*`),            // arabic numeral headings
	regexp.MustCompile(`(?mi)^Chapter\s+[0-9]+[^\n]*`),   // latin headings
}

// Parse deterministically segments raw text into an ordered chapter list.
// It never fails: input with no recognizable headings degrades to a single
// chapter holding the whole text.
//
// Chapter ids are "1".."N" in match order. Content preceding the first
// heading becomes a prologue with the sentinel id "0"; later chapters are
// not renumbered to accommodate it.
func Parse(content string) []models.Chapter {
	if strings.TrimSpace(content) == "" {
		return []models.Chapter{{ID: "1", Title: bodyTitle, Content: ""}}
	}

	// Dedup matches by start offset. When two patterns match at the same
	// position the shorter title wins: a looser pattern must not swallow
	// trailing text a stricter one excludes.
	titleAt := make(map[int]string)
	for _, re := range headingPatterns {
		for _, loc := range re.FindAllStringIndex(content, -1) {
			title := strings.TrimSpace(content[loc[0]:loc[1]])
			if existing, ok := titleAt[loc[0]]; !ok || len(title) < len(existing) {
				titleAt[loc[0]] = title
			}
		}
	}

	if len(titleAt) == 0 {
		return []models.Chapter{{ID: "1", Title: bodyTitle, Content: content}}
	}

	offsets := make([]int, 0, len(titleAt))
	for off := range titleAt {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	// Each chapter spans from its heading to the next heading (or EOF);
	// the heading line stays part of the chapter's content.
	chapters := make([]models.Chapter, 0, len(offsets)+1)
	for i, off := range offsets {
		end := len(content)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		chapters = append(chapters, models.Chapter{
			ID:      strconv.Itoa(i + 1),
			Title:   titleAt[off],
			Content: strings.TrimSpace(content[off:end]),
		})
	}

	if offsets[0] > 0 {
		if prologue := strings.TrimSpace(content[:offsets[0]]); prologue != "" {
			chapters = append([]models.Chapter{{
				ID:      models.PrologueChapterID,
				Title:   prologueTitle,
				Content: prologue,
			}}, chapters...)
		}
	}

	return chapters
}
