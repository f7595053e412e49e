package middleware

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"devjobs/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// CtxUploadedFileKey holds the stored random filename for the request's
// uploaded file, when one was accepted.
const CtxUploadedFileKey = "uploaded_file"

var (
	ImageTypes = []string{"image/jpeg", "image/png"}
	PDFTypes   = []string{"application/pdf"}
)

const (
	msgFileTooLarge  = "El archivo es muy grande: Máximo 100kb"
	msgInvalidFormat = "Formato no válido"
	msgFileRequired  = "Debes adjuntar un archivo"
)

type UploadMiddleware struct {
	store    storage.Store
	maxBytes int64
	lg       zerolog.Logger
}

func NewUploadMiddleware(store storage.Store, maxBytes int64, lg zerolog.Logger) *UploadMiddleware {
	return &UploadMiddleware{
		store:    store,
		maxBytes: maxBytes,
		lg:       lg.With().Str("component", "upload").Logger(),
	}
}

// Single accepts at most one file from the named multipart field, verifies
// size and content type, and stores it under category with a random name.
// The stored filename is left in Locals for the handler.
func (m *UploadMiddleware) Single(field, category string, allowed []string, required bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		fh, err := c.FormFile(field)
		if err != nil {
			if required {
				return NewAppError(fiber.StatusBadRequest, msgFileRequired, nil, err)
			}
			return c.Next()
		}

		if fh.Size > m.maxBytes {
			return NewAppError(fiber.StatusBadRequest, msgFileTooLarge, nil, nil)
		}

		data, err := readAll(fh)
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if int64(len(data)) > m.maxBytes {
			return NewAppError(fiber.StatusBadRequest, msgFileTooLarge, nil, nil)
		}

		mimeType := detectType(data, fh)
		if !typeAllowed(mimeType, allowed) {
			return NewAppError(fiber.StatusBadRequest, msgInvalidFormat, nil, nil)
		}

		name := storage.RandomName(extensionFor(mimeType))
		if err := m.store.Save(c.Context(), category, name, data); err != nil {
			m.lg.Error().Err(err).Str("category", category).Msg("store upload")
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		c.Locals(CtxUploadedFileKey, name)
		return c.Next()
	}
}

// UploadedFile returns the filename stored for this request, if any.
func UploadedFile(c fiber.Ctx) string {
	name, _ := c.Locals(CtxUploadedFileKey).(string)
	return name
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// detectType sniffs the content rather than trusting the client header.
func detectType(data []byte, fh *multipart.FileHeader) string {
	detected := http.DetectContentType(data)
	if detected != "application/octet-stream" {
		return strings.ToLower(strings.TrimSpace(strings.Split(detected, ";")[0]))
	}
	declared := fh.Header.Get("Content-Type")
	return strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
}

func typeAllowed(mimeType string, allowed []string) bool {
	for _, t := range allowed {
		if mimeType == t {
			return true
		}
	}
	return false
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "application/pdf":
		return "pdf"
	default:
		return "bin"
	}
}
