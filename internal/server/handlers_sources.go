package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmilbury/agentpress/apimodels"
	"github.com/jmilbury/agentpress/internal/dataset"
	"github.com/jmilbury/agentpress/internal/models"
)

const (
	previewRows   = 5
	maxUploadSize = 64 << 20 // 64 MiB
)

func (s *Server) handleDataSourceCreate(w http.ResponseWriter, r *http.Request) {
	var source models.DataSource
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if source.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.DataSources.Create(&source); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, source)
}

func (s *Server) handleDataSourceList(w http.ResponseWriter, r *http.Request) {
	sources, err := s.store.DataSources.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func (s *Server) handleDataSourceGet(w http.ResponseWriter, r *http.Request) {
	source, err := s.store.DataSources.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (s *Server) handleDataSourceUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	source, err := s.store.DataSources.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(source); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	source.ID = id
	if err := s.store.DataSources.Update(source); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (s *Server) handleDataSourceDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DataSources.Delete(chi.URLParam(r, "id")); err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apimodels.MessageResponse{Message: "data source deleted successfully"})
}

// handleDataSourceUpload accepts a multipart form with a "file" part and
// optional "name", "delimiter", and "encoding" fields, stores the file under
// the upload directory, and creates the CSV data source record.
func (s *Server) handleDataSourceUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	path := filepath.Join(s.cfg.UploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(header.Filename)))
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	source := models.DataSource{
		Name:       name,
		SourceType: models.SourceTypeCSV,
		FilePath:   path,
		ConnectionParams: map[string]string{
			"delimiter": formValueOr(r, "delimiter", ","),
			"encoding":  formValueOr(r, "encoding", "utf-8"),
		},
		Description: r.FormValue("description"),
	}
	if err := s.store.DataSources.Create(&source); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, source)
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func (s *Server) handleDataSourceTest(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.loadSourceDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, apimodels.SourceTestResponse{Status: "success", RowCount: len(ds.Rows)})
}

func (s *Server) handleDataSourcePreview(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.loadSourceDataset(w, r)
	if !ok {
		return
	}
	rows := ds.Rows
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}
	writeJSON(w, http.StatusOK, apimodels.SourcePreviewResponse{Columns: ds.Columns, Rows: rows})
}

func (s *Server) loadSourceDataset(w http.ResponseWriter, r *http.Request) (dataset.Dataset, bool) {
	source, err := s.store.DataSources.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err)
		return dataset.Dataset{}, false
	}
	if source.SourceType != models.SourceTypeCSV || source.FilePath == "" {
		writeError(w, http.StatusBadRequest, "data source must be a CSV with a valid file")
		return dataset.Dataset{}, false
	}
	ds, err := dataset.Load(source.FilePath, source.ConnectionParams)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read data source: %v", err))
		return dataset.Dataset{}, false
	}
	return ds, true
}

// handleDataSourceLink attaches a data source and column mapping to an agent
// instance.
func (s *Server) handleDataSourceLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req apimodels.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	instance, err := s.store.Instances.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	source, err := s.store.DataSources.Get(req.DataSourceID)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	instance.DataSourceID = source.ID
	instance.Mapping = req.Mapping
	if err := s.store.Instances.Update(instance); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, apimodels.LinkResponse{
		Status:       "linked",
		InstanceID:   instance.ID,
		DataSourceID: source.ID,
		Mapping:      instance.Mapping,
	})
}
