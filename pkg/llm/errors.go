package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// Category groups provider failures by what the user can do about them.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryAuth
	CategoryQuota
	CategoryNetwork
)

func (c Category) String() string {
	switch c {
	case CategoryAuth:
		return "auth"
	case CategoryQuota:
		return "quota"
	case CategoryNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Classify maps a chat failure to a Category.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.StatusCode, apiErr.Code+" "+apiErr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryNetwork
	}

	return classifyText(err.Error())
}

func classifyStatus(status int, detail string) Category {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CategoryAuth
	case status == http.StatusTooManyRequests:
		return CategoryQuota
	case status == http.StatusRequestTimeout, status >= http.StatusInternalServerError:
		return CategoryNetwork
	}
	return classifyText(detail)
}

func classifyText(msg string) Category {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthorized"), strings.Contains(msg, "permission"):
		return CategoryAuth
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"):
		return CategoryQuota
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection"),
		strings.Contains(msg, "timeout"):
		return CategoryNetwork
	}
	return CategoryUnknown
}
