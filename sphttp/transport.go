package sphttp

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// LoggingTransport logs every outbound REST call
type LoggingTransport struct {
	Transport http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		log.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("REST request failed")
		return resp, err
	}
	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("REST request")
	return resp, nil
}
