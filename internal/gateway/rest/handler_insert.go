package rest

import (
	"net/http"
	"time"
)

const opInsertMany = "insertMany"

func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req InsertRequest
	if err := decodeExtJSON(r, &req); err != nil {
		h.writeInternalError(w, r, opInsertMany, err)
		return
	}

	docs, err := req.Documents()
	if err != nil {
		h.writeInternalError(w, r, opInsertMany, err)
		return
	}
	h.logger.Debug(opInsertMany+": request", "body", req.Body.String(), "count", len(docs))

	started := time.Now()
	res, err := h.store.InsertMany(r.Context(), docs)
	observeOperation(opInsertMany, started, err)
	if err != nil {
		h.writeInternalError(w, r, opInsertMany, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
	h.reportPoolStatus(r.Context(), opInsertMany)
}
