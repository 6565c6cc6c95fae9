package server

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Upload error categories, surfaced to the recent list after humanization
const (
	UploadErrUnauthorized = "unauthorized"
	UploadErrTooLarge     = "too_large"
	UploadErrTimeout      = "timeout"
	UploadErrConnection   = "connection"
	UploadErrServer       = "server"
	UploadErrLocalRead    = "local_read"
	UploadErrUnknown      = "unknown"
)

// UploadError is a classified upload failure. The raw message is for
// logs and diagnostics only, the user sees the humanized category.
type UploadError struct {
	Category string
	Message  string
}

func (e *UploadError) Error() string {
	return e.Message
}

// Humanize returns the localized user-facing message for the category
func (e *UploadError) Humanize() string {
	switch e.Category {
	case UploadErrUnauthorized:
		return "Sesión no válida, vuelve a iniciar sesión"
	case UploadErrTooLarge:
		return "El archivo es demasiado grande para el servidor"
	case UploadErrTimeout:
		return "El servidor tardó demasiado en responder"
	case UploadErrConnection:
		return "No se pudo conectar con el servidor"
	case UploadErrLocalRead:
		return "No se pudo leer el archivo"
	case UploadErrServer:
		return "El servidor rechazó el archivo"
	}
	return "Error inesperado al subir el archivo"
}

// Uploader sends files to the upstream server
type Uploader struct {
	ServerURL string
	Creds     *CredentialStore
	Client    *http.Client
}

// NewUploader initialize a new instance
func NewUploader(serverURL string, creds *CredentialStore) *Uploader {
	return &Uploader{
		ServerURL: serverURL,
		Creds:     creds,
		Client:    &http.Client{},
	}
}

// Upload a single file as a multipart POST. Returns nil on any 2xx
// response, an *UploadError otherwise.
func (up *Uploader) Upload(path string) *UploadError {
	token := up.Creds.Token()
	userID := up.Creds.UserID()
	if token == "" || userID == "" {
		return &UploadError{
			Category: UploadErrUnauthorized,
			Message:  "no stored session",
		}
	}

	fileName := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		return &UploadError{
			Category: UploadErrLocalRead,
			Message:  fmt.Sprintf("unable to read file: %s", err),
		}
	}
	defer file.Close()

	pipeReader, pipeWriter := io.Pipe()
	multipartWriter := multipart.NewWriter(pipeWriter)

	go func() {
		fields := map[string]string{
			"name":   fileName,
			"user":   userID,
			"status": "pending",
		}
		for fieldname, value := range fields {
			if errM := multipartWriter.WriteField(fieldname, value); errM != nil {
				pipeWriter.CloseWithError(errM)
				return
			}
		}

		part, errM := createFilePart(multipartWriter, fileName)
		if errM != nil {
			pipeWriter.CloseWithError(errM)
			return
		}
		if _, errM := io.Copy(part, file); errM != nil {
			pipeWriter.CloseWithError(errM)
			return
		}

		pipeWriter.CloseWithError(multipartWriter.Close())
	}()

	apiURL := strings.TrimRight(up.ServerURL, "/") + "/api/collections/files_inbox/records"

	req, err := http.NewRequest("POST", apiURL, pipeReader)
	if err != nil {
		return &UploadError{
			Category: UploadErrUnknown,
			Message:  err.Error(),
		}
	}
	req.Header.Set("Content-Type", multipartWriter.FormDataContentType())
	req.Header.Set("Authorization", token)

	resp, err := up.Client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return classifyHTTPError(resp.StatusCode, resp.Status, string(body))
}

// createFilePart creates the "file" part with a best-effort MIME type
// (multipart.CreateFormFile would hardcode application/octet-stream)
func createFilePart(w *multipart.Writer, fileName string) (io.Writer, error) {
	mimeType := mime.TypeByExtension(filepath.Ext(fileName))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`,
		strings.ReplaceAll(fileName, `"`, `\"`)))
	header.Set("Content-Type", mimeType)
	return w.CreatePart(header)
}

func classifyTransportError(err error) *UploadError {
	category := UploadErrConnection

	if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
		category = UploadErrTimeout
	}

	return &UploadError{
		Category: category,
		Message:  fmt.Sprintf("upload request failed: %s", err),
	}
}

func classifyHTTPError(code int, status string, body string) *UploadError {
	category := UploadErrServer

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		category = UploadErrUnauthorized
	case http.StatusRequestEntityTooLarge:
		category = UploadErrTooLarge
	case http.StatusRequestTimeout:
		category = UploadErrTimeout
	}

	return &UploadError{
		Category: category,
		Message:  fmt.Sprintf("upload failed (%s): %s", status, body),
	}
}
