package packaging_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/bootstrap"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/config"
)

func buildApp(t *testing.T, savePath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		ExportSavePath:  savePath,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func createProject(t *testing.T, router *gin.Engine) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects",
		strings.NewReader(`{"name":"High Bay Warehouse","contactEmail":"dana@example.com","contactPhone":"555-0100"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d", resp.Code)
	}
	var created struct {
		ProjectID string `json:"projectId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	return created.ProjectID
}

func uploadApproved(t *testing.T, router *gin.Engine, projectID, category, fileName string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("category", category)
	fw, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("%PDF-1.4 " + fileName)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload %s: expected 201, got %d", fileName, resp.Code)
	}

	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode document: %v", err)
	}

	patch := httptest.NewRequest(http.MethodPatch, "/api/v1/documents/"+created.DocumentID+"/status",
		strings.NewReader(`{"status":"approved"}`))
	patch.Header.Set("Content-Type", "application/json")
	patchResp := httptest.NewRecorder()
	router.ServeHTTP(patchResp, patch)
	if patchResp.Code != http.StatusOK {
		t.Fatalf("approve %s: expected 200, got %d", fileName, patchResp.Code)
	}
}

var requiredUploads = []struct{ category, fileName string }{
	{"site_plan", "site.pdf"},
	{"facility_plan", "facility.pdf"},
	{"egress_plan", "egress.pdf"},
	{"structural_plans", "racking.pdf"},
	{"commodities", "commodities.pdf"},
	{"fire_protection", "sprinklers.pdf"},
	{"special_inspection", "inspection.pdf"},
}

func generateCoverLetter(t *testing.T, router *gin.Engine, projectID string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/cover-letter", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("cover letter: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func getProgress(t *testing.T, router *gin.Engine, projectID string) (int, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+projectID+"/progress", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("progress: expected 200, got %d", resp.Code)
	}
	var report struct {
		Percent  int  `json:"percent"`
		Eligible bool `json:"eligible"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	return report.Percent, report.Eligible
}

func TestExportEndToEnd(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "package.zip")
	router := buildApp(t, savePath)
	projectID := createProject(t, router)

	for _, up := range requiredUploads {
		uploadApproved(t, router, projectID, up.category, up.fileName)
	}

	percent, eligible := getProgress(t, router, projectID)
	if percent != 100 {
		t.Fatalf("percent = %d, want 100", percent)
	}
	if eligible {
		t.Fatal("eligible before cover letter exists")
	}

	generateCoverLetter(t, router, projectID)

	if _, eligible := getProgress(t, router, projectID); !eligible {
		t.Fatal("not eligible after cover letter")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result struct {
		Method   string   `json:"method"`
		Location string   `json:"location"`
		Entries  int      `json:"entries"`
		Skipped  []string `json:"skipped"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if result.Method != "save_path" {
		t.Fatalf("method = %q", result.Method)
	}
	if result.Entries != 8 {
		t.Fatalf("entries = %d, want 8", result.Entries)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("skipped = %v", result.Skipped)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 8 {
		t.Fatalf("archive has %d entries, want 8", len(zr.File))
	}
	if zr.File[0].Name != "00_Cover_Letter.docx" {
		t.Fatalf("first entry = %q", zr.File[0].Name)
	}
	if zr.File[1].Name != "01_site.pdf" {
		t.Fatalf("second entry = %q", zr.File[1].Name)
	}
	if last := zr.File[7].Name; last != "07_commodities.pdf" {
		t.Fatalf("last entry = %q", last)
	}
}

func TestExportRejectsIncompleteProject(t *testing.T) {
	router := buildApp(t, filepath.Join(t.TempDir(), "package.zip"))
	projectID := createProject(t, router)

	uploadApproved(t, router, projectID, "site_plan", "site.pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != "not_eligible" {
		t.Fatalf("code = %q", payload.Error.Code)
	}
}

func TestExportUnknownProject(t *testing.T) {
	router := buildApp(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/missing/export", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDownloadReturnsArchiveInline(t *testing.T) {
	router := buildApp(t, "")
	projectID := createProject(t, router)

	for _, up := range requiredUploads {
		uploadApproved(t, router, projectID, up.category, up.fileName)
	}
	generateCoverLetter(t, router, projectID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+projectID+"/export/download", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/zip" {
		t.Fatalf("content type = %q", got)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "High_Bay_Warehouse_Documents.zip") {
		t.Fatalf("content disposition = %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(resp.Body.Bytes()), int64(resp.Body.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if zr.File[0].Name != "00_Cover_Letter.docx" {
		t.Fatalf("first entry = %q", zr.File[0].Name)
	}
}
