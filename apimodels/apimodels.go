// Package apimodels holds the request and response shapes of the HTTP API.
package apimodels

import (
	"time"

	"github.com/jmilbury/agentpress/internal/dataset"
	"github.com/jmilbury/agentpress/internal/models"
)

// ArticleInput is a pre-written article supplied by the client. When the
// create request carries none, the server generates articles instead.
type ArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ArticleCreateRequest struct {
	AgentInstanceID uint64         `json:"agent_instance_id"`
	Articles        []ArticleInput `json:"articles"`
}

type ArticlesResponse struct {
	AgentInstanceID uint64           `json:"agent_instance_id"`
	Articles        []models.Article `json:"articles"`
}

type DailyNarrativesResponse struct {
	Date     string           `json:"date"`
	Articles []models.Article `json:"articles"`
}

type LinkRequest struct {
	DataSourceID string               `json:"datasource_id"`
	Mapping      models.MappingConfig `json:"mapping_config"`
}

type LinkResponse struct {
	Status       string               `json:"status"`
	InstanceID   uint64               `json:"instance_id"`
	DataSourceID string               `json:"datasource_id"`
	Mapping      models.MappingConfig `json:"mapping_config"`
}

type SourceTestResponse struct {
	Status   string `json:"status"`
	RowCount int    `json:"row_count"`
}

type SourcePreviewResponse struct {
	Columns []string      `json:"columns"`
	Rows    []dataset.Row `json:"rows"`
}

type MetricsResponse struct {
	AgentInstanceID uint64     `json:"agent_instance_id"`
	TotalArticles   int        `json:"total_articles"`
	LastRun         *time.Time `json:"last_run"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
