package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkwell/config"
	"inkwell/models"
	"inkwell/utils"
)

// UploadController handles image uploads to local disk.
type UploadController struct {
	db *gorm.DB
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

// Upload stores a multipart image under the configured upload directory with
// a random filename and returns its public URL. Size is capped (5MB default)
// and the content type must be on the image allowlist; the type is sniffed
// from content, not trusted from the client header.
func (u *UploadController) Upload(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxSizeMB) * 1024 * 1024

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40081,
			fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	// Sniff the real content type from the first 512 bytes.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to read file")
		return
	}
	mimeType := http.DetectContentType(head[:n])
	if !mimeAllowed(mimeType, cfg.AllowedMimeTypes) {
		utils.Error(ctx, http.StatusBadRequest, 40082, "unsupported file type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to read file")
		return
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to create upload directory")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionFor(mimeType)
	}
	name := uuid.NewString() + ext
	dstPath := filepath.Join(cfg.UploadDir, name)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to save file")
		return
	}
	defer out.Close()

	// Enforce the cap again while copying; the header size is client-supplied.
	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50084, "failed to write file")
		return
	}
	if written > maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40081,
			fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	url := "/uploads/" + name
	record := models.UploadedFile{
		UploaderID: userID,
		FilePath:   dstPath,
		URL:        url,
		MimeType:   mimeType,
		SizeBytes:  written,
	}
	if err := u.db.Create(&record).Error; err != nil {
		// The file is on disk and usable; losing the audit row is logged only.
		utils.Sugar.Warnf("upload record failed path=%s err=%v", dstPath, err)
	}

	utils.Success(ctx, gin.H{"url": url, "mime_type": mimeType, "size_bytes": written})
}

func mimeAllowed(mimeType string, allowlist []string) bool {
	for _, allowed := range allowlist {
		if strings.EqualFold(mimeType, allowed) {
			return true
		}
	}
	return false
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
