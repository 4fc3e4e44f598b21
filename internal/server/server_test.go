package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmilbury/agentpress/apimodels"
	"github.com/jmilbury/agentpress/internal/config"
	"github.com/jmilbury/agentpress/internal/generator"
	"github.com/jmilbury/agentpress/internal/models"
	"github.com/jmilbury/agentpress/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(config.StoreConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.ServerConfig{Port: "0", UploadDir: t.TempDir()}
	gen := generator.New(st.Articles, st.DataSources, nil)
	return New(cfg, st, gen), st
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestOrganizationLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/organizations/", models.Organization{Name: "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	org := decodeBody[models.Organization](t, rec)
	assert.NotZero(t, org.ID)

	rec = doJSON(t, s, http.MethodPost, "/api/organizations/", models.Organization{Name: "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/organizations/%d", org.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/organizations/%d", org.ID),
		map[string]any{"is_demo": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.Organization](t, rec)
	assert.True(t, updated.IsDemo)
	assert.Equal(t, "Acme", updated.Name, "partial update keeps unset fields")

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/organizations/%d", org.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/organizations/%d", org.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrganizationValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/organizations/", models.Organization{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/organizations/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserRegister(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/users/register",
		models.User{Username: "pat", Email: "pat@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody[models.User](t, rec)
	assert.NotZero(t, user.ID)

	rec = doJSON(t, s, http.MethodPost, "/api/users/register", models.User{Username: "pat"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadCSV(t *testing.T, s *Server, name, content string) models.DataSource {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/data-sources/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[models.DataSource](t, rec)
}

func revenueCSV() string {
	data := "date,revenue,orders,region\n"
	for i := 0; i < 10; i++ {
		region := "North"
		if i%2 == 1 {
			region = "South"
		}
		data += fmt.Sprintf("2024-01-%02d,%d,10,%s\n", i+1, (i+1)*100, region)
	}
	return data
}

func TestDataSourceUploadTestPreview(t *testing.T) {
	s, _ := newTestServer(t)

	source := uploadCSV(t, s, "sales", revenueCSV())
	assert.Equal(t, models.SourceTypeCSV, source.SourceType)
	assert.Equal(t, "sales", source.Name)
	assert.Equal(t, ",", source.ConnectionParams["delimiter"])

	rec := doJSON(t, s, http.MethodGet, "/api/data-sources/"+source.ID+"/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	test := decodeBody[apimodels.SourceTestResponse](t, rec)
	assert.Equal(t, "success", test.Status)
	assert.Equal(t, 10, test.RowCount)

	rec = doJSON(t, s, http.MethodGet, "/api/data-sources/"+source.ID+"/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	preview := decodeBody[apimodels.SourcePreviewResponse](t, rec)
	assert.Equal(t, []string{"date", "revenue", "orders", "region"}, preview.Columns)
	assert.Len(t, preview.Rows, 5)
}

func TestDataSourceTestUnknownID(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/data-sources/nope/test", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func createInstance(t *testing.T, s *Server, name string) models.AgentInstance {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/agent-instances/",
		models.AgentInstance{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[models.AgentInstance](t, rec)
}

func linkSource(t *testing.T, s *Server, instanceID uint64, sourceID string) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/agent-instances/%d/datasources", instanceID),
		apimodels.LinkRequest{
			DataSourceID: sourceID,
			Mapping: models.MappingConfig{
				DateColumn:      "date",
				MetricColumns:   []string{"revenue"},
				CategoryColumns: []string{"region"},
			},
		})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link := decodeBody[apimodels.LinkResponse](t, rec)
	assert.Equal(t, "linked", link.Status)
	assert.Equal(t, sourceID, link.DataSourceID)
}

func TestArticleGenerationFlow(t *testing.T) {
	s, _ := newTestServer(t)

	source := uploadCSV(t, s, "sales", revenueCSV())
	instance := createInstance(t, s, "Finance Agent")
	linkSource(t, s, instance.ID, source.ID)

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/agent-instances/%d/articles", instance.ID),
		apimodels.ArticleCreateRequest{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[apimodels.ArticlesResponse](t, rec)
	assert.Equal(t, instance.ID, resp.AgentInstanceID)
	require.Len(t, resp.Articles, models.DefaultArticleCount)
	for _, a := range resp.Articles {
		assert.Contains(t, a.Content, "increasing")
	}

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/narratives/agent/%d", instance.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byAgent := decodeBody[apimodels.ArticlesResponse](t, rec)
	assert.Len(t, byAgent.Articles, 5)

	today := time.Now().UTC().Format("2006-01-02")
	rec = doJSON(t, s, http.MethodGet, "/api/narratives/daily/"+today, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	daily := decodeBody[apimodels.DailyNarrativesResponse](t, rec)
	assert.Len(t, daily.Articles, 5)

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/agent-instances/%d/metrics", instance.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := decodeBody[apimodels.MetricsResponse](t, rec)
	assert.Equal(t, 5, metrics.TotalArticles)
	require.NotNil(t, metrics.LastRun)
}

func TestArticleCreateVerbatim(t *testing.T) {
	s, _ := newTestServer(t)
	instance := createInstance(t, s, "Sales Agent")

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/agent-instances/%d/articles", instance.ID),
		apimodels.ArticleCreateRequest{Articles: []apimodels.ArticleInput{
			{Title: "Manual", Content: "hand-written body"},
		}})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[apimodels.ArticlesResponse](t, rec)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Manual", resp.Articles[0].Title)
}

func TestArticleCreateMismatchedInstanceID(t *testing.T) {
	s, _ := newTestServer(t)
	instance := createInstance(t, s, "Sales Agent")

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/agent-instances/%d/articles", instance.ID),
		apimodels.ArticleCreateRequest{AgentInstanceID: instance.ID + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticleCreateWithoutLinkedSource(t *testing.T) {
	s, _ := newTestServer(t)
	instance := createInstance(t, s, "Finance Agent")

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/agent-instances/%d/articles", instance.ID),
		apimodels.ArticleCreateRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to generate articles")
}

func TestDailyNarrativesBadDate(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/narratives/daily/January-1st", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInstanceMetricsUnknownInstance(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/agent-instances/99/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
