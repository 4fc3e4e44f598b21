package models

import "time"

// Organization is a tenant that owns users and agent instances.
type Organization struct {
	ID                  uint64 `badgerhold:"key" json:"id"`
	Name                string `json:"name"`
	IsDemo              bool   `json:"is_demo"`
	DataSourceConnected bool   `json:"data_source_connected"`
}

// User belongs to exactly one organization.
type User struct {
	ID             uint64 `badgerhold:"key" json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID uint64 `json:"organization_id"`
}

// DataSource describes an uploaded tabular file and how to parse it.
// ConnectionParams carries format parameters such as "delimiter" and
// "encoding".
type DataSource struct {
	ID               string            `badgerhold:"key" json:"id"`
	Name             string            `json:"name"`
	SourceType       string            `json:"source_type"`
	FilePath         string            `json:"file_path"`
	ConnectionParams map[string]string `json:"connection_params"`
	TableName        string            `json:"table_name,omitempty"`
	DateColumn       string            `json:"date_column,omitempty"`
	Description      string            `json:"description,omitempty"`
}

// SourceTypeCSV is the only source type the generation pipeline reads.
const SourceTypeCSV = "csv"

// MappingConfig assigns dataset columns to semantic roles.
type MappingConfig struct {
	DateColumn      string   `json:"date_column"`
	MetricColumns   []string `json:"metric_columns"`
	CategoryColumns []string `json:"category_columns"`
}

// InstanceConfig holds per-instance generation settings.
type InstanceConfig struct {
	ArticleCount int    `json:"article_count,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
}

// DefaultArticleCount is used when the instance configuration does not set
// article_count.
const DefaultArticleCount = 5

// AgentInstance is a configured persona: a display name (which doubles as
// the role), a linked data source, and a column mapping.
type AgentInstance struct {
	ID             uint64         `badgerhold:"key" json:"id"`
	AgentID        uint64         `json:"agent_id"`
	OrganizationID uint64         `json:"organization_id"`
	Name           string         `json:"agent_instance_name"`
	Configuration  InstanceConfig `json:"configuration"`
	DataSourceID   string         `json:"datasource_id,omitempty"`
	Mapping        MappingConfig  `json:"mapping_config"`
}

// Role resolves the instance's analysis role from its display name.
func (a *AgentInstance) Role() Role {
	return ResolveRole(a.Name)
}

// ArticleCount returns the configured article count, or the default.
func (a *AgentInstance) ArticleCount() int {
	if a.Configuration.ArticleCount > 0 {
		return a.Configuration.ArticleCount
	}
	return DefaultArticleCount
}

// Article is a generated narrative. Owned by exactly one agent instance and
// immutable after creation.
type Article struct {
	ID              string    `badgerhold:"key" json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	AgentInstanceID uint64    `json:"agent_instance_id"`
	CreatedAt       time.Time `json:"created_at"`
}
