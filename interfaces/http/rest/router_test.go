package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-backend/application/embedding"
	"nexus-backend/application/services"
	"nexus-backend/domain/layout"
	"nexus-backend/domain/schema"
	"nexus-backend/infrastructure/config"
	"nexus-backend/infrastructure/persistence/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewGraphStore()
	settings := memory.NewSettingsStore()
	registry := schema.NewDefaultRegistry()
	providers := embedding.NewRegistry(map[embedding.Provider]bool{}, settings)
	evaluator := embedding.NewEvaluator(providers)
	orchestrator := embedding.NewOrchestrator(evaluator, nil, store, nil, logger)
	positioner := layout.NewPositioner(rand.New(rand.NewSource(7)))

	mutations := services.NewMutationService(registry, positioner, store, store, orchestrator, nil, logger)
	queries := services.NewQueryService(registry, store)

	cfg := &config.Config{Environment: "test", JWTIssuer: "nexus-backend"}
	router := NewRouter(cfg, mutations, queries, registry, store, providers, logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_NodeLifecycle(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/bootstrap", map[string]string{"title": "Research"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/nodes", map[string]string{
		"type":     "topic",
		"title":    "Consensus Protocols",
		"parentId": "node:root",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	node := data["node"].(map[string]interface{})
	nodeID := node["id"].(string)
	assert.Equal(t, "topic", node["type"])
	assert.Equal(t, float64(18), node["val"])

	edge := data["edge"].(map[string]interface{})
	assert.Equal(t, "CHILD_OF", edge["type"])
	assert.Equal(t, nodeID, edge["source"])
	assert.Equal(t, "node:root", edge["target"])

	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/v1/nodes/"+nodeID, map[string]string{"summary": "Raft, Paxos"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RootDeletionForbidden(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/bootstrap", map[string]string{"title": "Research"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodDelete, server.URL+"/api/v1/nodes/node:root", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, true, body["error"])
}

func TestRouter_IllegalConnectionRejected(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/bootstrap", map[string]string{"title": "Research"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/nodes", map[string]string{
		"type":     "no_such_type",
		"title":    "Bad",
		"parentId": "node:root",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_NODE_TYPE", body["code"])
}

func TestRouter_LinkFlow(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/bootstrap", map[string]string{"title": "Research"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ids []string
	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/nodes", map[string]string{
			"type":     "topic",
			"title":    fmt.Sprintf("Topic %d", i),
			"parentId": "node:root",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		node := body["data"].(map[string]interface{})["node"].(map[string]interface{})
		ids = append(ids, node["id"].(string))
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/links/start", map[string]string{
		"sourceId": ids[0],
		"edgeType": "RELATED_TO",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/links/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["linking"])

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/v1/links/complete", map[string]string{"targetId": ids[1]})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	edge := body["data"].(map[string]interface{})
	assert.Equal(t, "RELATED_TO", edge["type"])

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/links/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]interface{})["linking"])
}

func TestRouter_SchemaAndProviders(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/schema/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["nodeSchema"])
	assert.NotEmpty(t, data["edgeSchema"])

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/providers/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := body["data"].([]interface{})
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		status := s.(map[string]interface{})
		assert.Equal(t, false, status["available"])
	}

	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/v1/providers/gemini", map[string]bool{"enabled": false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/v1/providers/unknown", map[string]bool{"enabled": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
