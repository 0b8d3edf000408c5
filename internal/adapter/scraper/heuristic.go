// Package scraper turns fetched job posting pages into extraction results.
package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxSectionRunes = 2000

var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)position:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)job title:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)role:?\s*([^\n.]+)`),
		regexp.MustCompile(`^([^\n.]{5,50})\s*\n`),
	}
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)company:?\s*([^\n.]+)`),
		regexp.MustCompile(`\b[Aa]t\s+([A-Z][^\n.]{2,30})`),
		regexp.MustCompile(`\b[Ww]ith\s+([A-Z][^\n.]{2,30})\s+is`),
	}
	remoteMention  = regexp.MustCompile(`(?i)remote`)
	remotePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)remote\s*\(([^)]+)\)`),
		regexp.MustCompile(`(?i)remote[\s\-]+([A-Za-z0-9\s,]+)`),
		regexp.MustCompile(`(?i)location:?\s*remote\s*([A-Za-z0-9\s,]+)`),
	}
	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)salary:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)compensation:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)pay:?\s*([^\n.]+)`),
	}
	salaryRange     = regexp.MustCompile(`\$\s*(\d{2,3}[,.]?\d{3})\s*[-–]\s*\$?\s*(\d{2,3}[,.]?\d{3})`)
	jobTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)job type:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)employment type:?\s*([^\n.]+)`),
		regexp.MustCompile(`(?i)(full[\s-]*time|part[\s-]*time|contract|freelance|temporary)`),
	}
	blueCollar = regexp.MustCompile(`(?i)(manufacturing|factory|construction|maintenance|technician|mechanic|electrician|plumber|driver|operator|laborer|warehouse|assembly|physical labor|trades|craft|repair|hands-on|mechanical|technical|installation|field service)`)
	greyCollar = regexp.MustCompile(`(?i)(healthcare|nurse|medical|teacher|education|culinary|chef|hospitality|retail|service industry|firefighter|police|security|childcare|elder care|salon|cosmetology|customer service)`)

	descriptionSection  = regexp.MustCompile(`(?is)(job description|about the role|responsibilities|about the position)(.+?)(requirements|qualifications|about you|who you are|apply now|apply today)`)
	requirementsSection = regexp.MustCompile(`(?is)(requirements|qualifications|what you'll need|what we're looking for|who you are)(.+?)(benefits|perks|why join|how to apply|apply now)`)
)

// Heuristic extracts job details from the readable text of a page using
// label and keyword patterns common to job boards. It is safe for concurrent use.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Scrape implements repository.PageScraper.
func (h *Heuristic) Scrape(page *entity.Page) (*entity.ExtractionResult, error) {
	text, articleTitle, err := readableText(page)
	if err != nil {
		return nil, err
	}
	result := h.FromText(text, page.URL)
	if result.Title == "" {
		result.Title = strings.TrimSpace(articleTitle)
	}
	return result, nil
}

// FromText applies the field heuristics to already extracted plain text.
// Paragraphs in text are separated by blank lines.
func (h *Heuristic) FromText(text, pageURL string) *entity.ExtractionResult {
	result := &entity.ExtractionResult{
		Location:       entity.DefaultLocation,
		JobType:        entity.DefaultJobType,
		JobCategory:    entity.CategoryWhiteCollar,
		ApplicationURL: pageURL,
		SourceURL:      pageURL,
	}

	result.Title = firstMatch(text, titlePatterns)
	result.Company = firstMatch(text, companyPatterns)

	if remoteMention.MatchString(text) {
		if where := firstMatch(text, remotePatterns); where != "" {
			result.Location = fmt.Sprintf("Remote (%s)", where)
		} else {
			result.Location = "Remote (Worldwide)"
		}
	}

	if salary := firstMatch(text, salaryPatterns); salary != "" {
		result.SalaryRange = salary
	} else if m := salaryRange.FindStringSubmatch(text); m != nil {
		result.SalaryRange = fmt.Sprintf("$%s - $%s", m[1], m[2])
	}

	if jobType := firstMatch(text, jobTypePatterns); jobType != "" {
		// A Caser keeps state between calls, so each call gets its own.
		result.JobType = cases.Title(language.English).String(jobType)
	}

	switch {
	case blueCollar.MatchString(text):
		result.JobCategory = entity.CategoryBlueCollar
	case greyCollar.MatchString(text):
		result.JobCategory = entity.CategoryGreyCollar
	}

	if m := descriptionSection.FindStringSubmatch(text); m != nil {
		result.Description = strings.TrimSpace(m[2])
	} else {
		paragraphs := strings.Split(text, "\n\n")
		if len(paragraphs) > 1 {
			end := min(4, len(paragraphs))
			result.Description = strings.Join(paragraphs[1:end], "\n\n")
		}
	}
	if m := requirementsSection.FindStringSubmatch(text); m != nil {
		result.Requirements = strings.TrimSpace(m[2])
	}

	result.Description = truncate(result.Description, maxSectionRunes, "...")
	result.Requirements = truncate(result.Requirements, maxSectionRunes, "...")
	return result
}

// readableText runs the page through readability and flattens the article
// into paragraphs separated by blank lines.
func readableText(page *entity.Page) (string, string, error) {
	pageURL, err := url.Parse(page.URL)
	if err != nil {
		return "", "", fmt.Errorf("parsing page url: %w", err)
	}
	article, err := readability.FromReader(strings.NewReader(page.HTML), pageURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", repository.ErrNoContent, err)
	}

	text := blockText(article.Content)
	if text == "" {
		text = strings.TrimSpace(article.TextContent)
	}
	if text == "" {
		return "", "", repository.ErrNoContent
	}
	return text, article.Title, nil
}

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote"

// blockText flattens the block elements of an HTML fragment into paragraphs
// separated by blank lines. A block nested in another block is emitted only
// as part of its outermost one.
func blockText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		if t := collapseSpace(s.Text()); t != "" {
			blocks = append(blocks, t)
		}
	})
	return strings.Join(blocks, "\n\n")
}

func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes, appending suffix when it had to cut.
func truncate(s string, n int, suffix string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + suffix
}
