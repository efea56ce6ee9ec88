// Package news serves the static demonstration headlines shown on the
// dashboard. There is no upstream feed; articles are generated relative to
// the request time so the UI always has recent-looking items.
package news

import (
	"sort"
	"strings"
	"time"
)

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Article is one headline.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	URL            string    `json:"url"`
	PublishedAt    time.Time `json:"publishedAt"`
	Source         string    `json:"source"`
	Category       string    `json:"category,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	RelatedSymbols []string  `json:"relatedSymbols,omitempty"`
}

type marketItem struct {
	title, summary, source, category string
	sentiment                        Sentiment
	age                              time.Duration
	symbols                          []string
}

var marketFeed = []marketItem{
	{
		title:     "Stock Market Hits New Record High as Tech Stocks Surge",
		summary:   "The S&P 500 reached a new all-time high today, driven by strong performance in technology stocks. Apple, Microsoft, and NVIDIA led the gains.",
		source:    "Financial Times",
		category:  "market",
		sentiment: Positive,
		age:       30 * time.Minute,
		symbols:   []string{"AAPL", "MSFT", "NVDA"},
	},
	{
		title:     "Federal Reserve Hints at Potential Interest Rate Changes",
		summary:   "In a recent statement, the Federal Reserve indicated possible adjustments to interest rates in the coming months, citing inflation concerns.",
		source:    "Reuters",
		category:  "policy",
		sentiment: Neutral,
		age:       105 * time.Minute,
		symbols:   []string{"SPY", "QQQ"},
	},
	{
		title:     "Bitcoin Surges Past $100,000 as Institutional Adoption Grows",
		summary:   "Bitcoin reached a new milestone as major institutions continue to adopt cryptocurrency, with Tesla and MicroStrategy leading the charge.",
		source:    "CoinDesk",
		category:  "crypto",
		sentiment: Positive,
		age:       135 * time.Minute,
		symbols:   []string{"BTC-USD", "ETH-USD"},
	},
	{
		title:     "Oil Prices Decline Amid Global Economic Uncertainty",
		summary:   "Crude oil prices fell sharply today as concerns about global economic growth weigh on energy markets.",
		source:    "Bloomberg",
		category:  "commodities",
		sentiment: Negative,
		age:       210 * time.Minute,
		symbols:   []string{"CL=F", "XOM", "CVX"},
	},
	{
		title:     "Tesla Reports Strong Q2 Earnings, Stock Jumps 8%",
		summary:   "Tesla exceeded expectations with strong Q2 earnings, reporting record deliveries and improved margins.",
		source:    "CNBC",
		category:  "earnings",
		sentiment: Positive,
		age:       300 * time.Minute,
		symbols:   []string{"TSLA"},
	},
}

// Categories lists the categories used by the market feed.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range marketFeed {
		if !seen[item.category] {
			seen[item.category] = true
			out = append(out, item.category)
		}
	}
	return out
}

// Market returns the general feed newest first. An empty category or "all"
// returns every article; query filters on title and summary.
func Market(category, query string, now time.Time) []Article {
	category = strings.ToLower(strings.TrimSpace(category))
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Article, 0, len(marketFeed))
	for i, item := range marketFeed {
		if category != "" && category != "all" && item.category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.title), query) &&
			!strings.Contains(strings.ToLower(item.summary), query) {
			continue
		}
		out = append(out, Article{
			ID:             "market-" + string(rune('1'+i)),
			Title:          item.title,
			Summary:        item.summary,
			URL:            "#",
			PublishedAt:    now.Add(-item.age).UTC(),
			Source:         item.source,
			Category:       item.category,
			Sentiment:      item.sentiment,
			RelatedSymbols: append([]string(nil), item.symbols...),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].PublishedAt.After(out[b].PublishedAt) })
	return out
}

// Articles returns the headlines shown on an instrument page. name falls back
// to the symbol when empty.
func Articles(symbol, name string, now time.Time) []Article {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return []Article{}
	}
	if strings.TrimSpace(name) == "" {
		name = symbol
	}
	related := []string{symbol}
	return []Article{
		{
			ID:             symbol + "-earnings",
			Title:          name + " Reports Strong Q3 Earnings",
			Summary:        name + " announced third-quarter results that beat analyst expectations, with solid revenue growth.",
			URL:            "#",
			PublishedAt:    now.Add(-90 * time.Minute).UTC(),
			Source:         "Financial Times",
			Category:       "earnings",
			Sentiment:      Positive,
			RelatedSymbols: related,
		},
		{
			ID:             symbol + "-rating",
			Title:          "Analysts Upgrade " + symbol + " Stock Rating",
			Summary:        "Several analysts raised their rating on " + symbol + " to Buy with higher price targets, citing a strong business outlook.",
			URL:            "#",
			PublishedAt:    now.Add(-165 * time.Minute).UTC(),
			Source:         "Bloomberg",
			Category:       "market",
			Sentiment:      Positive,
			RelatedSymbols: related,
		},
		{
			ID:             symbol + "-product",
			Title:          name + " Announces New Product Launch",
			Summary:        name + " unveiled its latest product, expected to grow market share and revenue.",
			URL:            "#",
			PublishedAt:    now.Add(-195 * time.Minute).UTC(),
			Source:         "Reuters",
			Category:       "market",
			Sentiment:      Neutral,
			RelatedSymbols: related,
		},
	}
}
