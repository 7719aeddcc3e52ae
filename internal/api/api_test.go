package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfd/shelfd/internal/model"
	"github.com/shelfd/shelfd/internal/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(memory.New()))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func createFolder(t *testing.T, srv *httptest.Server, name string) model.Folder {
	t.Helper()
	resp, body := doJSON(t, "POST", srv.URL+"/api/folders", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)
	var f model.Folder
	require.NoError(t, json.Unmarshal(body, &f))
	return f
}

func createDocument(t *testing.T, srv *httptest.Server, name, folderID string) model.Document {
	t.Helper()
	resp, body := doJSON(t, "POST", srv.URL+"/api/documents", map[string]string{"name": name, "folderId": folderID})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)
	var d model.Document
	require.NoError(t, json.Unmarshal(body, &d))
	return d
}

func TestCreateFolder(t *testing.T) {
	srv := newTestServer(t)

	f := createFolder(t, srv, "Invoices")
	assert.NotEmpty(t, f.FolderID)
	assert.Equal(t, "Invoices", f.Name)
	assert.False(t, f.Archived)

	// duplicate, case-insensitive
	resp, _ := doJSON(t, "POST", srv.URL+"/api/folders", map[string]string{"name": "invoices"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// empty and whitespace-only names
	for _, name := range []string{"", "   "} {
		resp, _ := doJSON(t, "POST", srv.URL+"/api/folders", map[string]string{"name": name})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "name %q", name)
	}

	// malformed body
	req, _ := http.NewRequest("POST", srv.URL+"/api/folders", bytes.NewReader([]byte("{not json")))
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestGetFolder(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Taxes")

	resp, body := doJSON(t, "GET", srv.URL+"/api/folders/"+f.FolderID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Folder
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, f.FolderID, got.FolderID)

	// by name, case-insensitive
	resp, body = doJSON(t, "GET", srv.URL+"/api/folders/TAXES", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, f.FolderID, got.FolderID)
	assert.Equal(t, "Taxes", got.Name)

	resp, _ = doJSON(t, "GET", srv.URL+"/api/folders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, "GET", srv.URL+"/api/folders/no-such-folder", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListFolders(t *testing.T) {
	srv := newTestServer(t)
	createFolder(t, srv, "A")
	createFolder(t, srv, "B")

	resp, body := doJSON(t, "GET", srv.URL+"/api/folders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Folders []model.Folder `json:"folders"`
		Count   int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "A", out.Folders[0].Name)
	assert.Equal(t, "B", out.Folders[1].Name)
}

func TestCreateDocument(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Invoices")

	d := createDocument(t, srv, "Q1.pdf", f.FolderID)
	assert.Equal(t, f.FolderID, d.FolderID)
	assert.False(t, d.Archived)

	// owning folder must exist
	resp, _ := doJSON(t, "POST", srv.URL+"/api/documents", map[string]string{"name": "orphan.pdf", "folderId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// document names are globally unique
	f2 := createFolder(t, srv, "Receipts")
	resp, _ = doJSON(t, "POST", srv.URL+"/api/documents", map[string]string{"name": "q1.PDF", "folderId": f2.FolderID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// blank name
	resp, _ = doJSON(t, "POST", srv.URL+"/api/documents", map[string]string{"name": " ", "folderId": f.FolderID})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetDocumentByName(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Invoices")
	d := createDocument(t, srv, "Q1.pdf", f.FolderID)

	resp, body := doJSON(t, "GET", srv.URL+"/api/documents/Q1.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Document
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, d.DocumentID, got.DocumentID)

	resp, _ = doJSON(t, "GET", srv.URL+"/api/documents/missing.pdf", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFolderArchiveCascade(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Invoices")
	d1 := createDocument(t, srv, "Q1.pdf", f.FolderID)
	d2 := createDocument(t, srv, "Q2.pdf", f.FolderID)

	resp, body := doJSON(t, "PATCH", srv.URL+"/api/folders/"+f.FolderID+"/archive", map[string]bool{"archived": true})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)
	var got model.Folder
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Archived)

	resp, body = doJSON(t, "GET", srv.URL+"/api/folders/"+f.FolderID+"/documents", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Documents []model.Document `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Documents, 2)
	for _, d := range out.Documents {
		assert.True(t, d.Archived, "document %s", d.DocumentID)
	}

	// legacy numeric encoding unarchives the tree
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/folders/"+f.FolderID+"/archive", map[string]int{"archived": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, "GET", srv.URL+"/api/documents/"+d1.DocumentID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc model.Document
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.False(t, doc.Archived)

	// legacy field alias
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/documents/"+d2.DocumentID+"/archive", map[string]bool{"isArchived": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// missing and malformed flags
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/folders/"+f.FolderID+"/archive", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/folders/"+f.FolderID+"/archive", map[string]string{"archived": "yes"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown targets
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/folders/"+uuid.NewString()+"/archive", map[string]bool{"archived": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, "PATCH", srv.URL+"/api/documents/"+uuid.NewString()+"/archive", map[string]bool{"archived": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFolderCascade(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Old")
	d := createDocument(t, srv, "old.pdf", f.FolderID)

	resp, body := doJSON(t, "DELETE", srv.URL+"/api/folders/"+f.FolderID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap model.Folder
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "Old", snap.Name)

	resp, _ = doJSON(t, "GET", srv.URL+"/api/folders/"+f.FolderID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, "GET", srv.URL+"/api/documents/"+d.DocumentID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, "DELETE", srv.URL+"/api/folders/"+f.FolderID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteDocument(t *testing.T) {
	srv := newTestServer(t)
	f := createFolder(t, srv, "Scratch")
	d := createDocument(t, srv, "tmp.pdf", f.FolderID)

	resp, _ := doJSON(t, "DELETE", srv.URL+"/api/documents/"+d.DocumentID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, "GET", srv.URL+"/api/documents/"+d.DocumentID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, "DELETE", srv.URL+"/api/documents/"+d.DocumentID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/health/db"} {
		resp, body := doJSON(t, "GET", srv.URL+path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &out), "path %s body %s", path, body)
		assert.Contains(t, out, "status")
	}
}

func TestArchiveFlagDecoding(t *testing.T) {
	cases := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`1`, true, false},
		{`0`, false, false},
		{`"true"`, false, true},
		{`2`, false, true},
		{`null`, false, true},
	}
	for _, tc := range cases {
		var f ArchiveFlag
		err := json.Unmarshal([]byte(tc.raw), &f)
		if tc.wantErr {
			assert.Error(t, err, fmt.Sprintf("raw %s", tc.raw))
			continue
		}
		require.NoError(t, err, "raw %s", tc.raw)
		assert.Equal(t, tc.want, bool(f), "raw %s", tc.raw)
	}
}
