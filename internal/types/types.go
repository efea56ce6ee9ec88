// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import "time"

type SymbolReq struct {
	Symbol string `path:"symbol"`
}

type StockReq struct {
	Symbol string `path:"symbol"`
	Period string `form:"period,optional"`
}

type Bar struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

type MACD struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type Bollinger struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

type Indicators struct {
	RSI       float64   `json:"rsi"`
	MACD      MACD      `json:"macd"`
	Bollinger Bollinger `json:"bollinger"`
	SMA20     float64   `json:"sma20"`
	SMA50     float64   `json:"sma50"`
	SMA200    float64   `json:"sma200"`
	ATR14     float64   `json:"atr14"`
}

type StockResp struct {
	Symbol         string      `json:"symbol"`
	Name           string      `json:"name"`
	Currency       string      `json:"currency,omitempty"`
	Exchange       string      `json:"exchange,omitempty"`
	Period         string      `json:"period"`
	CurrentPrice   float64     `json:"currentPrice"`
	PreviousClose  float64     `json:"previousClose"`
	Change         float64     `json:"change"`
	ChangePercent  float64     `json:"changePercent"`
	MarketCap      string      `json:"marketCap"`
	MarketCapValue float64     `json:"marketCapValue"`
	Volume         string      `json:"volume"`
	VolumeValue    int64       `json:"volumeValue"`
	PE             float64     `json:"pe"`
	High52w        float64     `json:"high52w"`
	Low52w         float64     `json:"low52w"`
	History        []Bar       `json:"history"`
	Indicators     *Indicators `json:"indicators,omitempty"`
}

type InsightResp struct {
	Symbol  string `json:"symbol"`
	Insight string `json:"insight"`
}

type ChatReq struct {
	Message string `json:"message,optional"`
	Symbol  string `json:"symbol,optional"`
}

type ChatResp struct {
	ID        string    `json:"id"`
	Response  string    `json:"response"`
	Symbol    *string   `json:"symbol"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Symbol    *string   `json:"symbol"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewsReq struct {
	Symbol   string `form:"symbol,optional"`
	Category string `form:"category,optional"`
	Q        string `form:"q,optional"`
}

type NewsArticle struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	URL            string    `json:"url"`
	PublishedAt    time.Time `json:"publishedAt"`
	Source         string    `json:"source"`
	Category       string    `json:"category,omitempty"`
	Sentiment      string    `json:"sentiment,omitempty"`
	RelatedSymbols []string  `json:"relatedSymbols,omitempty"`
}

type NewsResp struct {
	Symbol   string        `json:"symbol,omitempty"`
	Articles []NewsArticle `json:"articles"`
}

type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Symbol string  `json:"symbol"`
}

type ExchangeRatesReq struct {
	Base string `form:"base,optional"`
}

type ConvertReq struct {
	Amount float64 `form:"amount"`
	From   string  `form:"from"`
	To     string  `form:"to"`
}

type ConvertResp struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
	Fallback  bool    `json:"fallback"`
}

type InstrumentsReq struct {
	Category string `form:"category,optional"`
}

type SearchReq struct {
	Q     string `form:"q,optional"`
	Limit int    `form:"limit,optional"`
}

type Instrument struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

type Category struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type HealthResp struct {
	Status string `json:"status"`
}
