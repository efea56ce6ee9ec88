// Package assistant answers questions about a symbol with an LLM and records
// every exchange in the chat transcript.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/repo"
	"findash-api/pkg/llm"
	"findash-api/pkg/market"
	"findash-api/pkg/prompt"
)

const (
	defaultMaxMessageLength = 2000
	defaultTimeout          = 30 * time.Second
	generalSymbol           = "general"
	insightBars             = 5
	insightUnavailable      = "Technical analysis temporarily unavailable."
)

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrMessageTooLong = errors.New("message is too long")
)

// Generator produces a reply for a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// QuoteSource supplies the current quote used as prompt context.
type QuoteSource interface {
	Snapshot(ctx context.Context, symbol string) (*market.Quote, error)
}

// Question is one user chat request.
type Question struct {
	Message string
	Symbol  string
}

// Assistant orchestrates prompt building, generation, and transcript logging.
type Assistant struct {
	generator  Generator
	quotes     QuoteSource
	transcript repo.TranscriptStore
	analyst    *prompt.Template
	insight    *prompt.Template
	maxLen     int
	timeout    time.Duration
}

// Option customises an Assistant.
type Option func(*Assistant)

func WithMaxMessageLength(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.maxLen = n
		}
	}
}

// WithAnalystTemplate replaces the built-in analyst prompt.
func WithAnalystTemplate(t *prompt.Template) Option {
	return func(a *Assistant) {
		if t != nil {
			a.analyst = t
		}
	}
}

// WithTimeout bounds the snapshot and generation calls of one request.
func WithTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New builds an Assistant. generator may be nil, in which case every question
// is answered with the configuration fallback.
func New(generator Generator, quotes QuoteSource, transcript repo.TranscriptStore, opts ...Option) (*Assistant, error) {
	if transcript == nil {
		return nil, errors.New("assistant: transcript store is required")
	}
	funcs := prompt.Funcs()
	analyst, err := prompt.Inline("analyst", DefaultAnalystTemplate, funcs)
	if err != nil {
		return nil, err
	}
	insight, err := prompt.Inline("insight", DefaultInsightTemplate, funcs)
	if err != nil {
		return nil, err
	}
	a := &Assistant{
		generator:  generator,
		quotes:     quotes,
		transcript: transcript,
		analyst:    analyst,
		insight:    insight,
		maxLen:     defaultMaxMessageLength,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

type analystData struct {
	Symbol     string
	Name       string
	Price      string
	MarketCap  string
	PERatio    string
	High52Week string
	Volume     string
	Message    string
}

// Ask answers q and appends the exchange to the transcript. Provider failures
// are replaced by a categorized fallback reply and never returned as errors.
func (a *Assistant) Ask(ctx context.Context, q Question) (repo.ChatTurn, error) {
	message := strings.TrimSpace(q.Message)
	if message == "" {
		return repo.ChatTurn{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > a.maxLen {
		return repo.ChatTurn{}, fmt.Errorf("%w: limit is %d characters", ErrMessageTooLong, a.maxLen)
	}
	symbol := market.NormalizeSymbol(q.Symbol)
	logger := logx.WithContext(ctx).WithFields(logx.Field("symbol", symbol))

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	data := a.promptData(callCtx, logger, symbol, message)
	response := a.generate(callCtx, logger, a.analyst, data)

	turn, err := a.transcript.Append(ctx, message, response, symbol)
	if err != nil {
		return repo.ChatTurn{}, fmt.Errorf("assistant: record turn: %w", err)
	}
	return turn, nil
}

func (a *Assistant) promptData(ctx context.Context, logger logx.Logger, symbol, message string) analystData {
	data := analystData{Symbol: symbol, Message: message}
	if symbol == "" {
		data.Symbol = generalSymbol
		return data
	}
	if a.quotes == nil {
		return data
	}
	quote, err := a.quotes.Snapshot(ctx, symbol)
	if err != nil {
		logger.Slowf("assistant: no quote context for %s: %v", symbol, err)
		return data
	}
	data.Name = quote.Name
	data.Price = positive(quote.CurrentPrice)
	if quote.MarketCap > 0 {
		data.MarketCap = market.FormatMarketCap(quote.MarketCap)
	}
	data.PERatio = positive(quote.PERatio)
	data.High52Week = positive(quote.High52Week)
	if quote.Volume > 0 {
		data.Volume = market.FormatVolume(quote.Volume)
	}
	return data
}

func positive(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (a *Assistant) generate(ctx context.Context, logger logx.Logger, tmpl *prompt.Template, data any) string {
	if a.generator == nil {
		logger.Slowf("assistant: no chat provider configured")
		return FallbackAuth
	}
	user, err := tmpl.Render(data)
	if err != nil {
		logger.Errorf("assistant: render prompt %s: %v", tmpl.Source(), err)
		return FallbackUnknown
	}
	text, err := a.generator.Generate(ctx, SystemPrompt, user)
	if err != nil {
		category := llm.Classify(err)
		logger.Slowf("assistant: chat provider failed (%s): %v", category, err)
		return FallbackFor(category)
	}
	cleaned := StripMarkup(text)
	if cleaned == "" {
		return FallbackUnknown
	}
	return cleaned
}

type insightData struct {
	Symbol string
	Bars   []market.Bar
}

// Insight produces a short technical read of the most recent bars. It never
// fails; a provider error yields a fixed unavailable message.
func (a *Assistant) Insight(ctx context.Context, symbol string, bars []market.Bar) string {
	symbol = market.NormalizeSymbol(symbol)
	logger := logx.WithContext(ctx).WithFields(logx.Field("symbol", symbol))
	if len(bars) > insightBars {
		bars = bars[:insightBars]
	}
	if a.generator == nil || len(bars) == 0 {
		return insightUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	user, err := a.insight.Render(insightData{Symbol: symbol, Bars: bars})
	if err != nil {
		logger.Errorf("assistant: render insight: %v", err)
		return insightUnavailable
	}
	text, err := a.generator.Generate(callCtx, SystemPrompt, user)
	if err != nil {
		logger.Slowf("assistant: insight failed (%s): %v", llm.Classify(err), err)
		return insightUnavailable
	}
	if cleaned := StripMarkup(text); cleaned != "" {
		return cleaned
	}
	return insightUnavailable
}
