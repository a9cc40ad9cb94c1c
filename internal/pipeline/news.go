package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/model"
)

// newsQuery builds the climate-news search query for a company. Exchange
// tickers make poor search terms, so the curated entity map translates
// them to canonical company names first.
func (p *Pipeline) newsQuery(ticker, profileName string) string {
	name := p.catalog.EntityName(ticker, profileName)
	return fmt.Sprintf("%s climate risk ESG supply chain", name)
}

// fetchHeadlines retrieves recent climate-related headlines. Failures
// yield an empty list; headlines are context, never a hard requirement.
func (p *Pipeline) fetchHeadlines(ctx context.Context, ticker, profileName string) []model.Headline {
	if p.news == nil || p.cfg.News.Disabled {
		return nil
	}

	maxHeadlines := p.cfg.News.MaxHeadlines
	if maxHeadlines <= 0 {
		maxHeadlines = 3
	}

	query := p.newsQuery(ticker, profileName)
	results, err := p.news.News(ctx, query, maxHeadlines)
	if err != nil {
		zap.L().Warn("pipeline: news lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	headlines := make([]model.Headline, 0, len(results))
	for _, r := range results {
		headlines = append(headlines, model.Headline{
			Title:  r.Title,
			Body:   r.Excerpt,
			Source: r.Source,
			Date:   r.Date.Format("2006-01-02"),
			URL:    r.URL,
		})
	}
	return headlines
}
