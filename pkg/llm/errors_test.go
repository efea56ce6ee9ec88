package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"unauthorized", &openai.Error{StatusCode: http.StatusUnauthorized}, CategoryAuth},
		{"forbidden", &openai.Error{StatusCode: http.StatusForbidden}, CategoryAuth},
		{"rate limited", &openai.Error{StatusCode: http.StatusTooManyRequests}, CategoryQuota},
		{"server error", &openai.Error{StatusCode: http.StatusBadGateway}, CategoryNetwork},
		{"bad request mentioning key", &openai.Error{StatusCode: http.StatusBadRequest, Message: "API key not valid. Please pass a valid API key."}, CategoryAuth},
		{"bad request mentioning quota", &openai.Error{StatusCode: http.StatusBadRequest, Message: "quota exceeded"}, CategoryQuota},
		{"plain bad request", &openai.Error{StatusCode: http.StatusBadRequest}, CategoryUnknown},
		{"wrapped api error", fmt.Errorf("ask: %w", &openai.Error{StatusCode: http.StatusTooManyRequests}), CategoryQuota},
		{"deadline", context.DeadlineExceeded, CategoryNetwork},
		{"dial failure", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, CategoryNetwork},
		{"text network", errors.New("network is unreachable"), CategoryNetwork},
		{"text quota", errors.New("monthly quota reached"), CategoryQuota},
		{"other", errors.New("boom"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	require.Equal(t, "auth", CategoryAuth.String())
	require.Equal(t, "quota", CategoryQuota.String())
	require.Equal(t, "network", CategoryNetwork.String())
	require.Equal(t, "unknown", CategoryUnknown.String())
}
