package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/snapshot"
)

// parseOutline turns the wizard's text outline into chapters:
//
//	Intro
//	- Welcome [video]
//	- Setup
//	Practice
//	- Quiz [dynamic]
//
// Activities without a type are documents. Blank lines are ignored.
func parseOutline(text string) ([]snapshot.ChapterSchema, error) {
	var chapters []snapshot.ChapterSchema
	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "-") {
			chapters = append(chapters, snapshot.ChapterSchema{Name: line})
			continue
		}
		if len(chapters) == 0 {
			return nil, fmt.Errorf("line %d: activity before the first chapter", n+1)
		}
		name, typ, err := parseActivityLine(strings.TrimSpace(strings.TrimPrefix(line, "-")))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		ch := &chapters[len(chapters)-1]
		ch.Activities = append(ch.Activities, snapshot.ActivitySchema{Name: name, ActivityType: string(typ)})
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("outline needs at least one chapter")
	}
	return chapters, nil
}

func parseActivityLine(s string) (string, domain.ActivityType, error) {
	typ := domain.ActivityDocument
	if open := strings.LastIndex(s, "["); open >= 0 && strings.HasSuffix(s, "]") {
		t, err := domain.ParseActivityType(s[open+1 : len(s)-1])
		if err != nil {
			return "", "", err
		}
		typ = t
		s = strings.TrimSpace(s[:open])
	}
	if s == "" {
		return "", "", fmt.Errorf("activity name is required")
	}
	return s, typ, nil
}

func (d courseDraft) schema() (*snapshot.CourseSchema, error) {
	chapters, err := parseOutline(d.Outline)
	if err != nil {
		return nil, err
	}
	return &snapshot.CourseSchema{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Chapters:    chapters,
	}, nil
}
