// Package generator ties the pipeline together: it validates an agent
// instance's configuration, loads its dataset, runs the analyzer, and
// produces articles through either the generative backend or the
// deterministic composer.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmilbury/agentpress/internal/analyzer"
	"github.com/jmilbury/agentpress/internal/composer"
	"github.com/jmilbury/agentpress/internal/dataset"
	"github.com/jmilbury/agentpress/internal/llm"
	"github.com/jmilbury/agentpress/internal/models"
	"github.com/jmilbury/agentpress/internal/store"
)

// Service orchestrates article generation. The provider is optional: nil
// means no generative backend is configured and every batch uses the
// composer.
type Service struct {
	articles *store.ArticleStore
	sources  *store.DataSourceStore
	provider llm.Provider
}

func New(articles *store.ArticleStore, sources *store.DataSourceStore, provider llm.Provider) *Service {
	return &Service{
		articles: articles,
		sources:  sources,
		provider: provider,
	}
}

// GenerateArticles produces and persists a batch of articles for one agent
// instance and returns the number created. Precondition failures and source
// read failures are logged and reported as zero articles, never as errors;
// the only non-nil error is a persistence failure.
func (s *Service) GenerateArticles(ctx context.Context, instance *models.AgentInstance) (int, error) {
	slog.Info("starting article generation", "instance", instance.ID, "name", instance.Name)

	source, ok := s.linkedSource(instance)
	if !ok {
		return 0, nil
	}

	if len(instance.Mapping.MetricColumns) == 0 {
		slog.Warn("no metric columns mapped", "instance", instance.ID)
		return 0, nil
	}

	ds, err := dataset.Load(source.FilePath, source.ConnectionParams)
	if err != nil {
		slog.Error("failed to read data source", "instance", instance.ID, "source", source.ID, "error", err)
		return 0, nil
	}
	if ds.Empty() {
		slog.Warn("data source is empty", "instance", instance.ID, "source", source.ID)
		return 0, nil
	}

	// An empty analysis (mapping names no metric column present in the
	// dataset) still produces a batch; the composer emits whatever
	// fragments survive it.
	role := instance.Role()
	result := analyzer.Analyze(ds, instance.Mapping, role)

	count := instance.ArticleCount()
	contents := s.generateBatch(ctx, instance, role, result, count)

	date := time.Now().Format("2006-01-02")
	created := 0
	for i, content := range contents {
		title := fmt.Sprintf("%s Analysis Report %d - %s", instance.Name, i+1, date)
		if _, err := s.articles.Create(title, content, instance.ID); err != nil {
			return created, fmt.Errorf("persist article %d: %w", i+1, err)
		}
		created++
	}

	slog.Info("article generation completed", "instance", instance.ID, "articles", created)
	return created, nil
}

// linkedSource checks the data-source preconditions: the instance must link
// a CSV source with a readable underlying file.
func (s *Service) linkedSource(instance *models.AgentInstance) (*models.DataSource, bool) {
	if instance.DataSourceID == "" {
		slog.Warn("no data source linked", "instance", instance.ID)
		return nil, false
	}
	source, err := s.sources.Get(instance.DataSourceID)
	if err != nil {
		slog.Warn("linked data source not found", "instance", instance.ID, "source", instance.DataSourceID)
		return nil, false
	}
	if source.SourceType != models.SourceTypeCSV || source.FilePath == "" {
		slog.Warn("data source is not a readable CSV", "instance", instance.ID, "source", source.ID, "type", source.SourceType)
		return nil, false
	}
	if _, err := os.Stat(source.FilePath); err != nil {
		slog.Warn("data source file is not readable", "instance", instance.ID, "path", source.FilePath, "error", err)
		return nil, false
	}
	return source, true
}

// generateBatch produces the batch contents. When the provider is present
// the whole batch is attempted through it; a failure on any call discards
// the partial batch and regenerates all of it with the composer. The batch
// is never mixed across the two paths.
func (s *Service) generateBatch(ctx context.Context, instance *models.AgentInstance, role models.Role, result analyzer.Result, count int) []string {
	if s.provider == nil {
		slog.Info("generative backend not configured, using deterministic composition", "instance", instance.ID)
		return s.composeBatch(role, result, count)
	}

	analysisContext := llm.BuildContext(result, role)
	contents := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		content, err := s.provider.Generate(ctx, role, analysisContext, i)
		if err != nil {
			slog.Warn("generative backend call failed, falling back to deterministic composition",
				"instance", instance.ID, "report", i, "error", err)
			return s.composeBatch(role, result, count)
		}
		contents = append(contents, content)
	}
	return contents
}

func (s *Service) composeBatch(role models.Role, result analyzer.Result, count int) []string {
	contents := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		contents = append(contents, composer.Compose(role, result, i))
	}
	return contents
}
