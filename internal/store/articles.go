package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jmilbury/agentpress/internal/models"
)

type ArticleStore struct {
	db *badgerhold.Store
}

// Create persists a new article with a server-assigned id and creation
// timestamp and returns the stored record.
func (s *ArticleStore) Create(title, content string, agentInstanceID uint64) (*models.Article, error) {
	article := &models.Article{
		ID:              uuid.NewString(),
		Title:           title,
		Content:         content,
		AgentInstanceID: agentInstanceID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.db.Insert(article.ID, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// ListByAgentInstance returns the instance's articles, newest first.
func (s *ArticleStore) ListByAgentInstance(agentInstanceID uint64) ([]models.Article, error) {
	var articles []models.Article
	if err := s.db.Find(&articles, badgerhold.Where("AgentInstanceID").Eq(agentInstanceID)); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	sort.Slice(articles, func(a, b int) bool {
		return articles[a].CreatedAt.After(articles[b].CreatedAt)
	})
	return articles, nil
}

// ListByDate returns every article created on the given calendar day (UTC).
func (s *ArticleStore) ListByDate(day time.Time) ([]models.Article, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var articles []models.Article
	err := s.db.Find(&articles, badgerhold.Where("CreatedAt").Ge(start).And("CreatedAt").Lt(end))
	if err != nil {
		return nil, fmt.Errorf("list articles by date: %w", err)
	}
	sort.Slice(articles, func(a, b int) bool {
		return articles[a].CreatedAt.After(articles[b].CreatedAt)
	})
	return articles, nil
}

func (s *ArticleStore) CountByAgentInstance(agentInstanceID uint64) (int, error) {
	count, err := s.db.Count(&models.Article{}, badgerhold.Where("AgentInstanceID").Eq(agentInstanceID))
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return int(count), nil
}

// LatestByAgentInstance returns the most recent article, or nil when the
// instance has none.
func (s *ArticleStore) LatestByAgentInstance(agentInstanceID uint64) (*models.Article, error) {
	articles, err := s.ListByAgentInstance(agentInstanceID)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return &articles[0], nil
}
