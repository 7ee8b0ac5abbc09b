package handlers

import (
	"net/http"
	"strings"

	"github.com/openalpha/dealflow/api/types"
)

// DealHandler handles deal-related HTTP requests
type DealHandler struct {
	service types.DealService
}

// NewDealHandler creates a new deal handler
func NewDealHandler(service types.DealService) *DealHandler {
	return &DealHandler{service: service}
}

// HandleDeals handles /v1/deals endpoint (GET for list)
func (h *DealHandler) HandleDeals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listDeals(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}
}

// HandleDeal handles /v1/deals/{dealID} and its subresources:
//
//	GET /v1/deals/{dealID}
//	GET /v1/deals/{dealID}/allocations
//	GET /v1/deals/{dealID}/allocations/{address}
//	GET /v1/deals/{dealID}/claimable/{address}
func (h *DealHandler) HandleDeal(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/deals/")
	dealID, rest := splitPath(path)
	if dealID == "" {
		writeError(w, http.StatusBadRequest, "missing_deal_id", "Deal ID is required")
		return
	}

	endpoint, arg := splitPath(rest)
	switch endpoint {
	case "":
		h.getDeal(w, r, dealID)
	case "allocations":
		if arg == "" {
			h.listAllocations(w, r, dealID)
		} else {
			h.getAllocation(w, r, dealID, arg)
		}
	case "claimable":
		h.getClaimable(w, r, dealID, arg)
	default:
		writeError(w, http.StatusNotFound, "not_found", "Endpoint not found")
	}
}

// listDeals handles GET /v1/deals
func (h *DealHandler) listDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListDeals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_deals_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deals": deals,
		"total": len(deals),
	})
}

// getDeal handles GET /v1/deals/{dealID}
func (h *DealHandler) getDeal(w http.ResponseWriter, r *http.Request, dealID string) {
	deal, err := h.service.GetDeal(r.Context(), dealID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "deal_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_deal_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"deal": deal})
}

// listAllocations handles GET /v1/deals/{dealID}/allocations
func (h *DealHandler) listAllocations(w http.ResponseWriter, r *http.Request, dealID string) {
	allocs, err := h.service.ListAllocations(r.Context(), dealID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "deal_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "list_allocations_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"allocations": allocs,
		"total":       len(allocs),
	})
}

// getAllocation handles GET /v1/deals/{dealID}/allocations/{address}
func (h *DealHandler) getAllocation(w http.ResponseWriter, r *http.Request, dealID, address string) {
	alloc, err := h.service.GetAllocation(r.Context(), dealID, address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "allocation_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_allocation_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"allocation": alloc})
}

// getClaimable handles GET /v1/deals/{dealID}/claimable/{address}
func (h *DealHandler) getClaimable(w http.ResponseWriter, r *http.Request, dealID, address string) {
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing_address", "participant address is required")
		return
	}

	claimable, err := h.service.GetClaimable(r.Context(), dealID, address)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "deal_not_found", err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "get_claimable_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"claimable": claimable})
}
