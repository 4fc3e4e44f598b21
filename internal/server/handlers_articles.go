package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmilbury/agentpress/apimodels"
	"github.com/jmilbury/agentpress/internal/models"
)

// handleArticleCreate either stores pre-written articles verbatim or, when
// the payload carries none, triggers generation for the instance. Zero
// generated articles is reported as a client error; the API does not
// distinguish which precondition failed (known limitation carried over from
// the generation pipeline's silent-no-op error model).
func (s *Server) handleArticleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req apimodels.ArticleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AgentInstanceID != 0 && req.AgentInstanceID != id {
		writeError(w, http.StatusBadRequest, "agent_instance_id in payload does not match URL instance id")
		return
	}

	instance, err := s.store.Instances.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	var created []models.Article
	if len(req.Articles) > 0 {
		for _, input := range req.Articles {
			article, err := s.store.Articles.Create(input.Title, input.Content, instance.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			created = append(created, *article)
		}
	} else {
		count, err := s.generator.GenerateArticles(r.Context(), instance)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if count == 0 {
			writeError(w, http.StatusBadRequest, "failed to generate articles; ensure the data source and mapping configuration are valid")
			return
		}
		articles, err := s.store.Articles.ListByAgentInstance(instance.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(articles) > count {
			articles = articles[:count]
		}
		created = articles
	}

	writeJSON(w, http.StatusCreated, apimodels.ArticlesResponse{
		AgentInstanceID: instance.ID,
		Articles:        created,
	})
}

func (s *Server) handleDailyNarratives(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}

	articles, err := s.store.Articles.ListByDate(day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, apimodels.DailyNarrativesResponse{Date: dateStr, Articles: articles})
}

func (s *Server) handleAgentNarratives(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	articles, err := s.store.Articles.ListByAgentInstance(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, apimodels.ArticlesResponse{AgentInstanceID: id, Articles: articles})
}

func (s *Server) handleInstanceMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := s.store.Instances.Get(id); err != nil {
		respondLookupError(w, err)
		return
	}

	total, err := s.store.Articles.CountByAgentInstance(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := apimodels.MetricsResponse{AgentInstanceID: id, TotalArticles: total}
	latest, err := s.store.Articles.LatestByAgentInstance(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if latest != nil {
		resp.LastRun = &latest.CreatedAt
	}
	writeJSON(w, http.StatusOK, resp)
}
