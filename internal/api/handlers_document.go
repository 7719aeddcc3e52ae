package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/shelfd/shelfd/internal/api/respond"
	"github.com/shelfd/shelfd/internal/services"
)

// DocumentHandler is a thin HTTP transport over the document service.
type DocumentHandler struct {
	svc   *services.DocumentService
	query *services.QueryService
}

func NewDocumentHandler(svc *services.DocumentService, query *services.QueryService) *DocumentHandler {
	return &DocumentHandler{svc: svc, query: query}
}

// CreateDocument POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		FolderID string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	d, err := h.svc.CreateDocument(r.Context(), req.Name, req.FolderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, d)
}

// GetDocument GET /api/documents/{documentId}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDocument(r.Context(), mux.Vars(r)["documentId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// GetDocumentByName GET /api/documents/{documentName}
// Registered after the UUID route; resolves ids too via the query façade.
func (h *DocumentHandler) GetDocumentByName(w http.ResponseWriter, r *http.Request) {
	d, err := h.query.FindDocument(r.Context(), mux.Vars(r)["documentName"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// SetDocumentArchive PATCH /api/documents/{documentId}/archive
// Touches only this document; the folder flag is left alone.
func (h *DocumentHandler) SetDocumentArchive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON: "+err.Error())
		return
	}
	archived, err := req.flag()
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	d, err := h.svc.SetArchiveStatus(r.Context(), mux.Vars(r)["documentId"], archived)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// DeleteDocument DELETE /api/documents/{documentId}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), mux.Vars(r)["documentId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
