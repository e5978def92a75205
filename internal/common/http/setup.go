package http

import (
	"net/http"

	"github.com/pkravets/huddle-auth/internal/common/constants"
	"github.com/pkravets/huddle-auth/internal/common/httpmetrics"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
