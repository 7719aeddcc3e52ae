package model

import "time"

// Folder is the top level of the hierarchy. Folder names are unique
// case-insensitively across all folders.
type Folder struct {
	FolderID     string    `json:"folderId"`
	Name         string    `json:"name"`
	Archived     bool      `json:"archived"`
	CreationTime time.Time `json:"creationTime"`
}

// Document belongs to exactly one folder. FolderID is set at creation and
// never changes. Document names share a single case-insensitive namespace
// across all folders.
type Document struct {
	DocumentID   string    `json:"documentId"`
	FolderID     string    `json:"folderId"`
	Name         string    `json:"name"`
	Archived     bool      `json:"archived"`
	CreationTime time.Time `json:"creationTime"`
}
