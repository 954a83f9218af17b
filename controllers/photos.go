package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backend/config"
	"backend/store"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxPhotoSize      = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	mainImageWidth    = 800
	previewSize       = 300
	localUploadDir    = "./uploads"
)

// PhotoController stores menu and employee photos. When MINIO_ENDPOINT is
// configured images go to object storage; otherwise they land under
// ./uploads, which main serves statically.
type PhotoController struct {
	store  store.Store
	s3     *minio.Client
	bucket string
}

func NewPhotoController(s store.Store, cfg config.Config) *PhotoController {
	pc := &PhotoController{store: s, bucket: cfg.MinioBucket}
	if cfg.MinioEndpoint != "" {
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: true,
		})
		if err != nil {
			log.Printf("minio client init failed, falling back to local uploads: %v", err)
		} else {
			pc.s3 = client
		}
	}
	return pc
}

// UploadMenuPhoto handles POST /api/menu/:id/photo.
func (pc *PhotoController) UploadMenuPhoto(c *gin.Context) {
	pc.upload(c, store.MenuItems, "image", "menu")
}

// UploadEmployeePhoto handles POST /api/employees/:id/photo.
func (pc *PhotoController) UploadEmployeePhoto(c *gin.Context) {
	pc.upload(c, store.Employees, "photo", "employees")
}

func (pc *PhotoController) upload(c *gin.Context, collection, field, prefix string) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var existing map[string]interface{}
	if err := pc.store.FindOne(c.Request.Context(), collection, store.Filter{"_id": id}, &existing); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	mainURL, previewURL, err := pc.save(c.Request.Context(), file, prefix, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := map[string]interface{}{
		field:       mainURL,
		"updatedAt": time.Now().UTC(),
	}
	if err := pc.store.UpdateOne(c.Request.Context(), collection, store.Filter{"_id": id}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": mainURL, "previewUrl": previewURL})
}

func (pc *PhotoController) save(ctx context.Context, file *multipart.FileHeader, prefix, id string) (string, string, error) {
	if file.Size > maxPhotoSize {
		return "", "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", "", fmt.Errorf("unsupported file format: %s", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	originalData, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image data: %v", err)
	}

	var img image.Image
	if contentType == "image/png" {
		img, err = png.Decode(bytes.NewReader(originalData))
	} else {
		img, err = jpeg.Decode(bytes.NewReader(originalData))
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	baseName := fmt.Sprintf("%s/%s_%d", prefix, id, time.Now().Unix())
	mainName := baseName + ext
	previewName := baseName + "_preview" + ext

	var bufMain bytes.Buffer
	if file.Size >= compressThreshold {
		resized := resize.Resize(mainImageWidth, 0, img, resize.Lanczos3)
		if err := jpeg.Encode(&bufMain, resized, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to encode resized image: %v", err)
		}
	} else {
		bufMain.Write(originalData)
	}

	preview := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)
	var bufPreview bytes.Buffer
	if err := jpeg.Encode(&bufPreview, preview, &jpeg.Options{Quality: 75}); err != nil {
		return "", "", fmt.Errorf("failed to encode preview image: %v", err)
	}

	if pc.s3 != nil {
		return pc.saveToS3(ctx, mainName, previewName, &bufMain, &bufPreview)
	}
	return pc.saveLocal(mainName, previewName, bufMain.Bytes(), bufPreview.Bytes())
}

func (pc *PhotoController) saveToS3(ctx context.Context, mainName, previewName string, main, preview *bytes.Buffer) (string, string, error) {
	opts := minio.PutObjectOptions{ContentType: "image/jpeg"}
	if _, err := pc.s3.PutObject(ctx, pc.bucket, mainName, main, int64(main.Len()), opts); err != nil {
		return "", "", fmt.Errorf("failed to upload image: %v", err)
	}
	if _, err := pc.s3.PutObject(ctx, pc.bucket, previewName, preview, int64(preview.Len()), opts); err != nil {
		return "", "", fmt.Errorf("failed to upload preview: %v", err)
	}
	base := fmt.Sprintf("https://%s/%s", pc.s3.EndpointURL().Host, pc.bucket)
	return base + "/" + mainName, base + "/" + previewName, nil
}

func (pc *PhotoController) saveLocal(mainName, previewName string, main, preview []byte) (string, string, error) {
	mainPath := filepath.Join(localUploadDir, mainName)
	previewPath := filepath.Join(localUploadDir, previewName)
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %v", err)
	}
	if err := os.WriteFile(mainPath, main, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save image: %v", err)
	}
	if err := os.WriteFile(previewPath, preview, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save preview: %v", err)
	}
	return "/uploads/" + mainName, "/uploads/" + previewName, nil
}
