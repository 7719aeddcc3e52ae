// Package api is the HTTP transport over the hierarchy services.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/shelfd/shelfd/internal/api/respond"
	"github.com/shelfd/shelfd/internal/services"
)

// FolderHandler is a thin HTTP transport over the folder service.
type FolderHandler struct {
	svc   *services.FolderService
	query *services.QueryService
}

func NewFolderHandler(svc *services.FolderService, query *services.QueryService) *FolderHandler {
	return &FolderHandler{svc: svc, query: query}
}

// CreateFolder POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	f, err := h.svc.CreateFolder(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, f)
}

// ListFolders GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	fs, err := h.svc.ListFolders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"folders": fs, "count": len(fs)})
}

// GetFolder GET /api/folders/{folderId}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.GetFolder(r.Context(), mux.Vars(r)["folderId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, f)
}

// GetFolderByName GET /api/folders/{folderName}
// Registered after the UUID route; resolves ids too via the query façade.
func (h *FolderHandler) GetFolderByName(w http.ResponseWriter, r *http.Request) {
	f, err := h.query.FindFolder(r.Context(), mux.Vars(r)["folderName"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, f)
}

// SetFolderArchive PATCH /api/folders/{folderId}/archive
// Archiving or unarchiving a folder cascades to every document under it.
func (h *FolderHandler) SetFolderArchive(w http.ResponseWriter, r *http.Request) {
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
	f, err := h.svc.SetArchiveStatus(r.Context(), mux.Vars(r)["folderId"], archived)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, f)
}

// DeleteFolder DELETE /api/folders/{folderId}
// Deletes the folder and its documents, responding with the pre-deletion
// folder snapshot.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.DeleteFolder(r.Context(), mux.Vars(r)["folderId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, f)
}

// ListFolderDocuments GET /api/folders/{folderId}/documents
func (h *FolderHandler) ListFolderDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.query.DocumentsOf(r.Context(), mux.Vars(r)["folderId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}
