package api

import (
	"github.com/gorilla/mux"

	"github.com/shelfd/shelfd/internal/api/recovery"
	"github.com/shelfd/shelfd/internal/services"
	"github.com/shelfd/shelfd/internal/store"
)

// NewRouter wires all API routes over the given store.
//
// Id-addressed routes carry a UUID regex so name-addressed lookups can share
// the same path shape; the name routes are registered afterwards and only
// match when the regex does not.
func NewRouter(st store.Store) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	folderSvc := services.NewFolderService(st)
	documentSvc := services.NewDocumentService(st)
	querySvc := services.NewQueryService(st)

	folder := NewFolderHandler(folderSvc, querySvc)
	document := NewDocumentHandler(documentSvc, querySvc)
	healthHandler := NewHealthHandler(st)

	const uuidPat = "[0-9a-fA-F-]{36}"

	// Folder endpoints
	router.HandleFunc("/api/folders", folder.CreateFolder).Methods("POST")
	router.HandleFunc("/api/folders", folder.ListFolders).Methods("GET")
	router.HandleFunc("/api/folders/{folderId:"+uuidPat+"}", folder.GetFolder).Methods("GET")
	router.HandleFunc("/api/folders/{folderId:"+uuidPat+"}", folder.DeleteFolder).Methods("DELETE")
	router.HandleFunc("/api/folders/{folderId:"+uuidPat+"}/archive", folder.SetFolderArchive).Methods("PATCH")
	router.HandleFunc("/api/folders/{folderId:"+uuidPat+"}/documents", folder.ListFolderDocuments).Methods("GET")

	// Document endpoints
	router.HandleFunc("/api/documents", document.CreateDocument).Methods("POST")
	router.HandleFunc("/api/documents/{documentId:"+uuidPat+"}", document.GetDocument).Methods("GET")
	router.HandleFunc("/api/documents/{documentId:"+uuidPat+"}", document.DeleteDocument).Methods("DELETE")
	router.HandleFunc("/api/documents/{documentId:"+uuidPat+"}/archive", document.SetDocumentArchive).Methods("PATCH")

	// Name-based lookups (registered after UUID routes, rely on the UUID
	// regex to disambiguate)
	router.HandleFunc("/api/folders/{folderName}", folder.GetFolderByName).Methods("GET")
	router.HandleFunc("/api/documents/{documentName}", document.GetDocumentByName).Methods("GET")

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	return router
}
