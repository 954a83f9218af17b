package controllers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"backend/models"
	"backend/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func pngUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), A: 255})
		}
	}
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="dish.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part failed: %v", err)
	}
	if _, err := part.Write(encoded.Bytes()); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestUploadMenuPhotoLocal(t *testing.T) {
	chdirTemp(t)
	env := newTestEnv(t)
	id := env.seedMenuItem(t, models.MenuItem{Name: "Dosa", Category: "mains", Price: 90})

	body, contentType := pngUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/api/menu/"+id+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		URL        string `json:"url"`
		PreviewURL string `json:"previewUrl"`
	}
	decodeBody(t, w, &resp)
	if !strings.HasPrefix(resp.URL, "/uploads/menu/") {
		t.Fatalf("expected a local upload url, got %q", resp.URL)
	}
	if !strings.Contains(resp.PreviewURL, "_preview") {
		t.Fatalf("expected a preview url, got %q", resp.PreviewURL)
	}

	// the file landed on disk
	onDisk := "." + resp.URL
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("expected %s on disk: %v", onDisk, err)
	}

	objID, _ := primitive.ObjectIDFromHex(id)
	var item models.MenuItem
	if err := env.store.FindOne(context.Background(), store.MenuItems, store.Filter{"_id": objID}, &item); err != nil {
		t.Fatalf("failed to fetch menu item: %v", err)
	}
	if item.Image != resp.URL {
		t.Fatalf("expected image field updated to %q, got %q", resp.URL, item.Image)
	}
}

func TestUploadPhotoErrors(t *testing.T) {
	chdirTemp(t)
	env := newTestEnv(t)

	body, contentType := pngUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/api/menu/64b000000000000000000000/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown menu item, got %d", w.Code)
	}

	id := env.seedMenuItem(t, models.MenuItem{Name: "Dosa", Category: "mains", Price: 90})
	req = httptest.NewRequest(http.MethodPost, "/api/menu/"+id+"/photo", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", w.Code)
	}
}
