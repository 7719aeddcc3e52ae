package api

import (
	"errors"
	"net/http"

	respond "github.com/shelfd/shelfd/internal/api/respond"
	"github.com/shelfd/shelfd/internal/model"
)

// writeDomainError maps service/store error kinds to stable status codes:
// invalid input 422, duplicate name 400, missing folder/document 404,
// anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalid):
		respond.WriteUnprocessable(w, err.Error())
	case errors.Is(err, model.ErrDuplicateName):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrFolderNotFound), errors.Is(err, model.ErrDocumentNotFound):
		respond.WriteNotFound(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
