package handler

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"findash-api/internal/apperr"
)

func init() {
	httpx.SetErrorHandlerCtx(errorHandler)
}

// errorHandler renders every error as {"error": message}. Causes of server
// side failures are logged and never returned to the client.
func errorHandler(ctx context.Context, err error) (int, any) {
	e := apperr.From(err)
	status := e.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logx.WithContext(ctx).Errorf("request failed (%s): %v", e.Kind, err)
	}
	return status, apperr.Body{Error: e.PublicMessage()}
}

// parseError marks request decoding failures as client errors.
func parseError(err error) error {
	return apperr.Validation(err.Error(), err)
}
