package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

// gamepackagePaths are the locations the boot blob nests its gamepackage
// JSON under, tried in order. The page layout moves this around between
// seasons.
var gamepackagePaths = [][]any{
	{"page", "content", "gamepackage", "gamepackageJSON"},
	{"page", "content", "gamepackageJSON"},
	{"content", "gamepackage", "gamepackageJSON"},
	{"content", "gamepackageJSON"},
}

// PageSource scrapes the rendered boxscore page for the JSON state blob
// the page embeds as window.__espnfitt__. In-progress games often have a
// populated blob before the summary endpoint catches up, which makes this
// the reliable live-game fallback.
type PageSource struct {
	Client Fetcher
}

func (s *PageSource) Name() string { return "boxscore-page" }

func (s *PageSource) Players(ctx context.Context, summary jsontree.Tree) ([]Line, error) {
	eventID := eventIDFromSummary(summary)
	if eventID == "" {
		return nil, nil
	}

	html, err := s.Client.BoxscoreHTML(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("fetch boxscore page: %w", err)
	}

	boot, err := extractBootBlob(html)
	if err != nil {
		return nil, err
	}
	if boot == nil {
		return nil, nil
	}

	for _, path := range gamepackagePaths {
		if gpj := boot.Map(path...); gpj != nil {
			return boxscoreLines(gpj), nil
		}
	}
	return nil, nil
}

// extractBootBlob locates the script element carrying the __espnfitt__
// assignment and parses the object literal assigned to it. Returns nil
// when no such script exists; the page may be a shell during pregame.
func extractBootBlob(html string) (jsontree.Tree, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse boxscore page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, "__espnfitt__")
		if idx < 0 {
			return true
		}
		rest := text[idx:]
		eq := strings.Index(rest, "=")
		open := strings.Index(rest, "{")
		if eq < 0 || open < eq {
			return true
		}
		// The assignment is the script's last statement: everything from
		// the opening brace to the final closing brace is the object.
		end := strings.LastIndex(rest, "}")
		if end < open {
			return true
		}
		raw = rest[open : end+1]
		return false
	})
	if raw == "" {
		return nil, nil
	}

	boot, err := jsontree.Parse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse embedded boot blob: %w", err)
	}
	return boot, nil
}
