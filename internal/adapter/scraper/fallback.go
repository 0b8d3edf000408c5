package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/remotework/jobnexus/internal/entity"
)

const (
	maxFallbackTitle   = 100
	maxFallbackSummary = 500
	fallbackParagraphs = 5

	// PlaceholderTitle is the title of a result built without any page content.
	PlaceholderTitle       = "Unknown Position"
	PlaceholderDescription = "Could not extract job details. Please fill in the information manually."
)

// Fallback pulls a title and a short summary straight out of the HTML. It is
// used when the heuristics find no readable text.
type Fallback struct{}

// Scrape implements repository.PageScraper.
func (Fallback) Scrape(page *entity.Page) (*entity.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" || len([]rune(title)) > maxFallbackTitle {
		title = "Job Position"
		if h1 := doc.Find("h1").First(); h1.Length() > 0 {
			title = strings.TrimSpace(h1.Text())
		}
	}

	var paragraphs []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		paragraphs = append(paragraphs, s.Text())
		return i+1 < fallbackParagraphs
	})
	summary := strings.TrimSpace(strings.Join(paragraphs, " "))

	result := Placeholder(page.URL)
	result.Title = truncate(title, maxFallbackTitle, "")
	result.Description = truncate(summary, maxFallbackSummary, "")
	return result, nil
}

// Placeholder is the result returned when a page could not be read at all.
func Placeholder(pageURL string) *entity.ExtractionResult {
	return &entity.ExtractionResult{
		Title:          PlaceholderTitle,
		Location:       entity.DefaultLocation,
		Description:    PlaceholderDescription,
		JobType:        entity.DefaultJobType,
		JobCategory:    entity.CategoryWhiteCollar,
		ApplicationURL: pageURL,
		SourceURL:      pageURL,
	}
}
