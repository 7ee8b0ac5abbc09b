package handlers

import (
	"net/http"
	"strings"

	"github.com/openalpha/dealflow/api/types"
)

// TokenHandler handles ledger token HTTP requests
type TokenHandler struct {
	service types.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(service types.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// HandleTokens handles /v1/tokens endpoint (GET for list)
func (h *TokenHandler) HandleTokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTokens(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandleToken handles /v1/tokens/{denom} and its subresources:
//
//	GET /v1/tokens/{denom}
//	GET /v1/tokens/{denom}/balance/{address}
//
// Position and claim denoms contain slashes ("pool/p1"), so the denom may
// itself span two path segments when the trailing endpoint is absent.
func (h *TokenHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/tokens/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing_denom", "Token denom is required")
		return
	}

	// A "/balance/{address}" suffix splits denom from the balance lookup;
	// everything before it is the denom, slashes included.
	if idx := strings.Index(path, "/balance/"); idx >= 0 {
		denom := path[:idx]
		address := path[idx+len("/balance/"):]
		h.getBalance(w, r, denom, address)
		return
	}

	h.getToken(w, r, path)
}

// listTokens handles GET /v1/tokens
func (h *TokenHandler) listTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.service.ListTokens(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_tokens_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"total":  len(tokens),
	})
}

// getToken handles GET /v1/tokens/{denom}
func (h *TokenHandler) getToken(w http.ResponseWriter, r *http.Request, denom string) {
	token, err := h.service.GetToken(r.Context(), denom)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "token_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_token_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}

// getBalance handles GET /v1/tokens/{denom}/balance/{address}
func (h *TokenHandler) getBalance(w http.ResponseWriter, r *http.Request, denom, address string) {
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing_address", "account address is required")
		return
	}

	balance, err := h.service.GetBalance(r.Context(), denom, address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "token_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_balance_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}
