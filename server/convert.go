package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	wordify "github.com/012arish/Wordify"
	"github.com/012arish/Wordify/format"
	"github.com/012arish/Wordify/raster"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleConvert implements POST /convert: validate the multipart
// upload, run the conversion pipeline, and stream back the DOCX. The
// workspace holding the upload, the staged page images, and the output
// document is released on every exit path.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file provided"})
		return
	}
	defer file.Close()

	if format.Detect(header.Filename) != format.PDF {
		s.log.WithField("filename", header.Filename).Warn("rejected non-PDF upload")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PDF allowed"})
		return
	}

	dpi := s.parseDPI(r.FormValue("dpi"))
	fixOverlay := !strings.EqualFold(r.FormValue("fix_overlay"), "false")

	ws, err := NewWorkspace(s.cfg.TempDir)
	if err != nil {
		s.log.WithError(err).Error("workspace creation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "conversion failed", "detail": err.Error()})
		return
	}
	defer ws.Cleanup()

	if err := saveUpload(ws.UploadPath(), file); err != nil {
		s.log.WithError(err).Error("saving upload failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "conversion failed", "detail": err.Error()})
		return
	}

	doc, err := raster.OpenDocument(ws.UploadPath())
	if err != nil {
		s.log.WithError(err).WithField("filename", header.Filename).Warn("unreadable pdf")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed opening pdf", "detail": err.Error()})
		return
	}
	defer doc.Close()

	pages := doc.PageCount()
	err = wordify.FromDocument(doc).
		DPI(dpi).
		FixOverlay(fixOverlay).
		PageWidth(s.cfg.PageWidthInches).
		WorkDir(ws.Dir()).
		Logger(s.log).
		WriteFile(ws.OutputPath())
	if err != nil {
		s.log.WithError(err).WithField("filename", header.Filename).Error("conversion failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "conversion failed", "detail": err.Error()})
		return
	}

	name := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + ".docx"
	if err := serveAttachment(w, ws.OutputPath(), name); err != nil {
		// The response is already in flight; all we can do is log.
		s.log.WithError(err).Warn("streaming response failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"filename":    header.Filename,
		"pages":       pages,
		"dpi":         dpi,
		"fix_overlay": fixOverlay,
		"duration":    time.Since(start).Round(time.Millisecond).String(),
	}).Info("converted")
}

// parseDPI resolves the optional dpi form value: default when missing
// or malformed, silently capped at the configured maximum.
func (s *Server) parseDPI(value string) int {
	dpi := s.cfg.DefaultDPI
	if value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			dpi = n
		}
	}
	if dpi > s.cfg.MaxDPI {
		dpi = s.cfg.MaxDPI
	}
	return dpi
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func serveAttachment(w http.ResponseWriter, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	_, err = io.Copy(w, f)
	return err
}
