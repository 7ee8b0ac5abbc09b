package handlers

import (
	"net/http"
	"strings"

	"github.com/openalpha/dealflow/api/types"
)

// PoolHandler handles pool-related HTTP requests
type PoolHandler struct {
	service types.PoolService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(service types.PoolService) *PoolHandler {
	return &PoolHandler{service: service}
}

// HandlePools handles /v1/pools endpoint (GET for list)
func (h *PoolHandler) HandlePools(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPools(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandlePool handles /v1/pools/{poolID} and its subresources:
//
//	GET /v1/pools/{poolID}
//	GET /v1/pools/{poolID}/position/{address}
//	GET /v1/pools/{poolID}/max-pro-rata/{address}
func (h *PoolHandler) HandlePool(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/pools/")
	poolID, rest := splitPath(path)
	if poolID == "" {
		writeError(w, http.StatusBadRequest, "missing_pool_id", "Pool ID is required")
		return
	}

	endpoint, arg := splitPath(rest)
	switch endpoint {
	case "":
		h.getPool(w, r, poolID)
	case "position":
		h.getPosition(w, r, poolID, arg)
	case "max-pro-rata":
		h.getMaxProRata(w, r, poolID, arg)
	default:
		writeError(w, http.StatusNotFound, "not_found", "Endpoint not found")
	}
}

// listPools handles GET /v1/pools
func (h *PoolHandler) listPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.service.ListPools(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_pools_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pools": pools,
		"total": len(pools),
	})
}

// getPool handles GET /v1/pools/{poolID}
func (h *PoolHandler) getPool(w http.ResponseWriter, r *http.Request, poolID string) {
	pool, err := h.service.GetPool(r.Context(), poolID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_pool_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"pool": pool})
}

// getPosition handles GET /v1/pools/{poolID}/position/{address}
func (h *PoolHandler) getPosition(w http.ResponseWriter, r *http.Request, poolID, address string) {
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing_address", "participant address is required")
		return
	}

	position, err := h.service.GetPosition(r.Context(), poolID, address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_position_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"position": position})
}

// getMaxProRata handles GET /v1/pools/{poolID}/max-pro-rata/{address}
func (h *PoolHandler) getMaxProRata(w http.ResponseWriter, r *http.Request, poolID, address string) {
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing_address", "participant address is required")
		return
	}

	info, err := h.service.GetMaxProRata(r.Context(), poolID, address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "pool_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_max_pro_rata_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"max_pro_rata": info})
}
