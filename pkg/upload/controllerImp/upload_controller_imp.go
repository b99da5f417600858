package controllerImp

import (
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"farmwise/pkg/ai"
)

const maxImageBytes = 10 * 1024 * 1024

type UploadCtrl struct {
	dir string
	ai  ai.Client
}

func New(dir string, client ai.Client) *UploadCtrl { return &UploadCtrl{dir: dir, ai: client} }

// readImage runs the shared checks for image uploads. On failure it writes
// the error response itself and returns ok=false; nothing touches disk.
func (h *UploadCtrl) readImage(c echo.Context) (data []byte, origName string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"detail": "file is required"})
		return nil, "", false
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"detail": "Only image files are allowed."})
		return nil, "", false
	}
	if fh.Size > maxImageBytes {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"detail": "File size too large. Maximum size is 10MB."})
		return nil, "", false
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
		return nil, "", false
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
		return nil, "", false
	}
	return data, fh.Filename, true
}

// store writes the bytes under a collision-resistant random name, keeping the
// original extension (sniffed from content when the name has none).
func (h *UploadCtrl) store(data []byte, origName string) (string, error) {
	ext := filepath.Ext(origName)
	if ext == "" {
		ext = mimetype.Detect(data).Extension()
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	if err := os.WriteFile(filepath.Join(h.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (h *UploadCtrl) UploadImage(c echo.Context) error {
	data, origName, ok := h.readImage(c)
	if !ok {
		return nil
	}
	name, err := h.store(data, origName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"image_url": "/uploads/" + name})
}

func (h *UploadCtrl) UploadAndIdentify(c echo.Context) error {
	data, origName, ok := h.readImage(c)
	if !ok {
		return nil
	}
	name, err := h.store(data, origName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}

	// The stored reference is returned even when identification fails; the
	// adapter already degrades to canned text.
	identification := h.ai.Identify(base64.StdEncoding.EncodeToString(data))

	return c.JSON(http.StatusOK, echo.Map{
		"image_url":           "/uploads/" + name,
		"crop_identification": identification,
		"filename":            name,
		"file_size":           len(data),
	})
}
