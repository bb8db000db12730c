package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/schema"
)

const opFind = "find"

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func (h *Handler) handleFind(w http.ResponseWriter, r *http.Request) {
	var req FindRequest
	if err := decodeExtJSON(r, &req); err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}
	h.find(w, r, req)
}

// handleFindQuery serves GET /find, taking the same fields as POST /find from
// the query string.
func (h *Handler) handleFindQuery(w http.ResponseWriter, r *http.Request) {
	var params FindQueryParams
	if err := queryDecoder.Decode(&params, r.URL.Query()); err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}
	req, err := params.FindRequest()
	if err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}
	h.find(w, r, req)
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request, req FindRequest) {
	filter, err := req.Filter()
	if err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}
	opts, err := req.QueryOptions()
	if err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}
	h.logger.Debug(opFind+": request", "filter", filter.String())

	started := time.Now()
	docs, err := h.store.Find(r.Context(), filter, opts)
	observeOperation(opFind, started, err)
	if err != nil {
		h.writeInternalError(w, r, opFind, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
	h.reportPoolStatus(r.Context(), opFind)
}
