package api

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// handleProxy forwards a feed query on behalf of a credential-less client.
// The query must carry at least module and action; the server-held API key
// is appended before forwarding and the upstream response body is relayed
// verbatim with the upstream's status code.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("module") == "" || query.Get("action") == "" {
		s.writeError(w, http.StatusBadRequest, "module and action parameters are required")
		return
	}

	if s.cfg.Feed.APIKey == "" {
		s.writeError(w, http.StatusInternalServerError, "feed credential is not configured")
		return
	}
	query.Set("apikey", s.cfg.Feed.APIKey)

	upstream := fmt.Sprintf("%s?%s", s.cfg.Feed.BaseURL, query.Encode())
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, upstream, nil)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}

	resp, err := s.proxyClient.Do(req)
	if err != nil {
		s.logger.Error("Proxy request failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "upstream feed unreachable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Error("Failed to relay upstream body", zap.Error(err))
	}
}
