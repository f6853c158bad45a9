package http

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

const extensionArchiveName = "linkedin_crm_extension.zip"

// ExtensionHandler packages the browser-extension assets for download.
// It touches nothing in the profile store.
type ExtensionHandler struct {
	extensionDir string
	logger       logger.Logger
}

func NewExtensionHandler(extensionDir string, log logger.Logger) *ExtensionHandler {
	return &ExtensionHandler{
		extensionDir: extensionDir,
		logger:       log,
	}
}

func (h *ExtensionHandler) Download(c *gin.Context) {
	archive, err := zipDirectory(h.extensionDir)
	if err != nil {
		c.Error(apperror.NewInternal("failed to package extension", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, extensionArchiveName))
	c.Data(http.StatusOK, "application/zip", archive)
}

func zipDirectory(dir string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		entry, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(entry, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("walk extension dir: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
