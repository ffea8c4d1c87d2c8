package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/storage"
	"github.com/avelar/inkpad/internal/store"
	"github.com/avelar/inkpad/internal/templates"
)

// testEnv sets up a temp SQLite store, file store, service, and router.
// An empty authToken means auth is disabled.
func testEnv(t *testing.T, authToken string) (*docservice.Service, http.Handler) {
	t.Helper()
	svc, router, _ := testEnvWithFiles(t, authToken != "", authToken)
	return svc, router
}

func testEnvWithFiles(t *testing.T, authEnabled bool, authToken string) (*docservice.Service, http.Handler, string) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "api-test.db"), nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	reg, err := templates.NewRegistry(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("templates.NewRegistry: %v", err)
	}

	filesDir := t.TempDir()
	files, err := storage.NewFS(filesDir)
	if err != nil {
		t.Fatalf("storage.NewFS: %v", err)
	}

	svc := docservice.NewService(db, reg)
	router := NewRouter(svc, authEnabled, authToken, nil, files)
	return svc, router, filesDir
}

func createDocument(t *testing.T, router http.Handler, title string) DocumentDetail {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"title": title})
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var doc DocumentDetail
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCreateAndGetDocument(t *testing.T) {
	_, router := testEnv(t, "")

	doc := createDocument(t, router, "Hello")

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got DocumentDetail
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Title != "Hello" {
		t.Errorf("title = %q, want Hello", got.Title)
	}
	if len(got.Blocks) != 1 {
		t.Errorf("len(blocks) = %d, want 1", len(got.Blocks))
	}
	if got.Checksum == "" {
		t.Error("expected a checksum in the response")
	}
}

func TestCreateDocument_DefaultTitle(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "")
	if doc.Title != "Untitled Document" {
		t.Errorf("title = %q, want Untitled Document", doc.Title)
	}
}

func TestCreateDocument_UnknownTemplate(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]string{"title": "X", "templateId": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown template = %d, want 404", w.Code)
	}
}

func TestUpdateDocumentWithOptimisticLocking(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Lock")

	// Patch with correct checksum.
	patchBody, _ := json.Marshal(map[string]string{"title": "Lock v2"})
	req := httptest.NewRequest(http.MethodPatch, "/documents/"+doc.ID, bytes.NewReader(patchBody))
	req.Header.Set("If-Match", doc.Checksum)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("patch with correct checksum = %d, body = %s", w.Code, w.Body.String())
	}

	// Patch with stale checksum → 409.
	req = httptest.NewRequest(http.MethodPatch, "/documents/"+doc.ID, bytes.NewReader(patchBody))
	req.Header.Set("If-Match", doc.Checksum) // stale now
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("patch with stale checksum = %d, want 409", w.Code)
	}
}

func TestUpdateDocumentWithoutIfMatch(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "NoLock")

	patchBody, _ := json.Marshal(map[string]string{"title": "Renamed"})
	req := httptest.NewRequest(http.MethodPatch, "/documents/"+doc.ID, bytes.NewReader(patchBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("patch without If-Match = %d, want 200", w.Code)
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	_, router := testEnv(t, "")
	parent := createDocument(t, router, "Parent")

	childBody, _ := json.Marshal(map[string]string{"title": "Child", "parentId": parent.ID})
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(childBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var child DocumentDetail
	_ = json.Unmarshal(w.Body.Bytes(), &child)

	req = httptest.NewRequest(http.MethodDelete, "/documents/"+parent.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d, want 204", w.Code)
	}

	for _, id := range []string{parent.ID, child.ID} {
		req = httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("get %s after cascade = %d, want 404", id, w.Code)
		}
	}
}

func TestInsertAndPatchBlock(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Blocks")

	body, _ := json.Marshal(map[string]string{"type": "heading1", "content": "Top"})
	req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/blocks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("insert block = %d, body = %s", w.Code, w.Body.String())
	}
	var updated DocumentDetail
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if len(updated.Blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(updated.Blocks))
	}

	// Patch the heading's content.
	blockID := updated.Blocks[1].ID
	patch, _ := json.Marshal(map[string]string{"content": "Renamed"})
	req = httptest.NewRequest(http.MethodPatch, "/documents/"+doc.ID+"/blocks/"+blockID, bytes.NewReader(patch))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("patch block = %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Blocks[1].Content != "Renamed" {
		t.Errorf("content = %q", updated.Blocks[1].Content)
	}
}

func TestInsertBlock_UnknownType(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Bad")

	body, _ := json.Marshal(map[string]string{"type": "spreadsheet"})
	req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/blocks", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown type = %d, want 400", w.Code)
	}
}

func TestPatchBlock_AutoConvert(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Convert")
	blockID := doc.Blocks[0].ID

	body, _ := json.Marshal(map[string]any{"content": "# Big News", "autoConvert": true})
	req := httptest.NewRequest(http.MethodPatch, "/documents/"+doc.ID+"/blocks/"+blockID, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("patch = %d, body = %s", w.Code, w.Body.String())
	}
	var updated DocumentDetail
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if string(updated.Blocks[0].Type) != "heading1" || updated.Blocks[0].Content != "Big News" {
		t.Errorf("block = %+v, want heading1 with stripped prefix", updated.Blocks[0])
	}
}

func TestMoveBlocks(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Move")

	for _, content := range []string{"B", "C", "D"} {
		body, _ := json.Marshal(map[string]string{"type": "paragraph", "content": content})
		req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/blocks", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	body, _ := json.Marshal(map[string]int{"fromIndex": 1, "toIndex": 3})
	req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/blocks/move", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("move = %d", w.Code)
	}
	var updated DocumentDetail
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	var order []string
	for _, b := range updated.Blocks {
		order = append(order, b.Content)
	}
	want := []string{"", "C", "D", "B"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestListDocuments(t *testing.T) {
	_, router := testEnv(t, "")
	createDocument(t, router, "One")
	createDocument(t, router, "Two")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	docs := resp["documents"].([]any)
	if len(docs) != 2 {
		t.Errorf("len(documents) = %d, want 2", len(docs))
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	createDocument(t, router, "uniquetoken page")

	req := httptest.NewRequest(http.MethodGet, "/search?q=uniquetoken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("search = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	results := resp["results"].([]any)
	if len(results) != 1 {
		t.Errorf("search results = %d, want 1", len(results))
	}
}

func TestSearchMissingQuery(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("search no query = %d, want 400", w.Code)
	}
}

func TestExportDocumentMarkdown(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Export Me!")

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID+"/export?format=markdown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, `filename="export_me_.md"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "# Export Me!") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExportDocument_UnsupportedFormat(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "X")

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID+"/export?format=docx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unsupported format = %d, want 400", w.Code)
	}
}

func TestWorkspaceBackupAndImport(t *testing.T) {
	_, router := testEnv(t, "")
	createDocument(t, router, "Alpha")
	createDocument(t, router, "Beta")

	req := httptest.NewRequest(http.MethodGet, "/workspace/backup", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("backup = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "workspace-backup-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	snapshot := w.Body.Bytes()

	// Restore into a fresh workspace.
	_, other := testEnv(t, "")
	req = httptest.NewRequest(http.MethodPost, "/workspace/import", bytes.NewReader(snapshot))
	w = httptest.NewRecorder()
	other.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ImportResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Imported != 2 {
		t.Errorf("imported = %d, want 2", resp.Imported)
	}
}

func TestWorkspaceImport_Malformed(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/workspace/import", strings.NewReader(`{"documents":[{"title":"no id"}]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed import = %d, want 400", w.Code)
	}
}

func TestFavoriteAndState(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Fav")

	req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/favorite", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("favorite = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/workspace/state", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("state = %d", w.Code)
	}
	var state map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &state)
	favs, _ := state["favorites"].([]any)
	if len(favs) != 1 {
		t.Errorf("favorites = %v", state["favorites"])
	}
}

func TestOpenDocumentRecordsRecent(t *testing.T) {
	_, router := testEnv(t, "")
	doc := createDocument(t, router, "Recent")

	req := httptest.NewRequest(http.MethodPost, "/documents/"+doc.ID+"/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("open = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/workspace/state", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var state map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &state)
	recents, _ := state["recents"].([]any)
	if len(recents) != 1 {
		t.Errorf("recents = %v", state["recents"])
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]string{"theme": "dark"})
	req := httptest.NewRequest(http.MethodPatch, "/settings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("patch settings = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/settings", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var settings map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &settings)
	if settings["theme"] != "dark" {
		t.Errorf("theme = %v", settings["theme"])
	}
}

func TestListTemplates(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("templates = %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	tpls := resp["templates"].([]any)
	if len(tpls) != 1 {
		t.Errorf("len(templates) = %d, want the built-in blank", len(tpls))
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/documents/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing document = %d, want 404", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	body, _ := json.Marshal(map[string]string{"title": "Authed"})
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("authed create = %d, want 201", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

// Attachment tests.

func uploadFile(t *testing.T, router http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.Copy(part, bytes.NewReader(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadAndListAttachments(t *testing.T) {
	_, router, filesDir := testEnvWithFiles(t, false, "")

	w := uploadFile(t, router, "test.png", []byte("fake-png-data"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["filename"] != "test.png" {
		t.Errorf("filename = %v", resp["filename"])
	}
	if resp["url"] != "/attachments/test.png" {
		t.Errorf("url = %v", resp["url"])
	}

	// Verify file on disk.
	data, err := os.ReadFile(filepath.Join(filesDir, "test.png"))
	if err != nil {
		t.Fatalf("file not on disk: %v", err)
	}
	if string(data) != "fake-png-data" {
		t.Errorf("content mismatch")
	}

	// List.
	req := httptest.NewRequest(http.MethodGet, "/attachments", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list attachments = %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	files := resp["attachments"].([]any)
	if len(files) != 1 {
		t.Errorf("len(attachments) = %d, want 1", len(files))
	}
}

func TestUploadAttachment_NoOverwrite(t *testing.T) {
	_, router, _ := testEnvWithFiles(t, false, "")

	if w := uploadFile(t, router, "logo.png", []byte("first")); w.Code != http.StatusCreated {
		t.Fatalf("first upload = %d", w.Code)
	}
	w := uploadFile(t, router, "logo.png", []byte("second"))
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate upload = %d, want 409", w.Code)
	}
}

func TestServeAttachment(t *testing.T) {
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Write("pic.png", []byte("png-bytes")); err != nil {
		t.Fatal(err)
	}
	ah := NewAttachmentHandler(fs)

	r := chi.NewRouter()
	r.Get("/attachments/{filename}", ah.ServeFile)
	req := httptest.NewRequest(http.MethodGet, "/attachments/pic.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("serve = %d", w.Code)
	}
	if w.Body.String() != "png-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeAttachment_NotFound(t *testing.T) {
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ah := NewAttachmentHandler(fs)

	r := chi.NewRouter()
	r.Get("/attachments/{filename}", ah.ServeFile)
	req := httptest.NewRequest(http.MethodGet, "/attachments/nope.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing attachment = %d, want 404", w.Code)
	}
}

func TestUploadAttachment_InvalidFilename(t *testing.T) {
	_, router, filesDir := testEnvWithFiles(t, false, "")
	// multipart headers may clean "../" so we also verify nothing lands outside.
	w := uploadFile(t, router, "../escape.txt", []byte("bad"))
	if w.Code == http.StatusCreated {
		if _, err := os.Stat(filepath.Join(filesDir, "..", "escape.txt")); err == nil {
			t.Error("file escaped the attachments directory")
		}
	}
}

func TestUploadAttachment_AuthProtected(t *testing.T) {
	_, router, _ := testEnvWithFiles(t, true, "secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "x.png")
	_, _ = part.Write([]byte("data"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("upload no auth = %d, want 401", w.Code)
	}
}

func TestUploadAttachment_MissingFileField(t *testing.T) {
	_, router, _ := testEnvWithFiles(t, false, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("wrong", "data")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing field = %d, want 400", w.Code)
	}
}

func TestDeleteAttachment(t *testing.T) {
	_, router, _ := testEnvWithFiles(t, false, "")
	uploadFile(t, router, "gone.png", []byte("x"))

	req := httptest.NewRequest(http.MethodDelete, "/attachments/gone.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/attachments/gone.png", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing = %d, want 404", w.Code)
	}
}
