package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/fleetfuel/reconciliation-engine/internal/config"
	"github.com/fleetfuel/reconciliation-engine/internal/repository"
	"github.com/fleetfuel/reconciliation-engine/internal/service"
)

// maxUploadBytes bounds one reconciliation upload. Ledger batches run to a
// few thousand rows, far below this.
const maxUploadBytes = 32 << 20

// Handler serves the reconciliation API.
type Handler struct {
	cfg      *config.Config
	narrator service.NarrativeGenerator // optional
	logger   *zap.Logger
}

// NewHandler creates a new Handler. narrator may be nil.
func NewHandler(cfg *config.Config, narrator service.NarrativeGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cfg: cfg, narrator: narrator, logger: logger}
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reconcile accepts a multipart upload with a "bank" settlement export and
// a "book" ledger export and returns the full reconciliation report.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	bankPath, cleanupBank, err := h.saveUpload(r, "bank")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupBank()

	bookPath, cleanupBook, err := h.saveUpload(r, "book")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupBook()

	bankRepo := repository.NewCSVBankRepository(bankPath, h.cfg.BankDateFormat, h.logger)
	bookRepo := repository.NewCSVBookRepository(bookPath, h.cfg.BookDateFormat, h.logger)

	svc := service.NewReconciliationService(bankRepo, bookRepo, h.narrator, h.logger)
	report, err := svc.Reconcile(r.Context())
	if err != nil {
		h.logger.Error("reconciliation failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toReconResponse(report))
}

// saveUpload spools one uploaded export to a temp file so the CSV
// repositories can stream it.
func (h *Handler) saveUpload(r *http.Request, field string) (string, func(), error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q file upload", field)
	}
	defer file.Close()

	path, err := spoolToTemp(file, field)
	if err != nil {
		return "", nil, fmt.Errorf("storing %q upload: %w", field, err)
	}

	return path, func() { os.Remove(path) }, nil
}

func spoolToTemp(file multipart.File, field string) (string, error) {
	tmp, err := os.CreateTemp("", "recon-"+field+"-*.csv")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
