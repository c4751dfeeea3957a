package loqui

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps every exchange when debug logging is requested.
// Dumps include bodies and headers (tokens included), so keep it out of
// production.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !debugLoggingRequested() {
		return dt.base.RoundTrip(req)
	}

	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("url", req.URL.String()).Bytes("dump", dump).Msg("http request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("http exchange failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Int("status", resp.StatusCode).Bytes("dump", dump).Msg("http response")
	}
	return resp, nil
}

// debugLoggingRequested checks LOQUI_DEBUG (targeted) and DEBUG (broad);
// either set to "true" enables HTTP traffic dumps.
func debugLoggingRequested() bool {
	return os.Getenv("LOQUI_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
