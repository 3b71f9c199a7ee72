// Copyright 2025 OceanKit
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"oceankit/gateway/connectors/genai"
	"oceankit/gateway/connectors/spaces"
	"oceankit/gateway/shared/logger"
)

const testBearerToken = "test-token"

// fakeStore implements ObjectStore with overridable behavior per method.
// Unset methods succeed with empty results.
type fakeStore struct {
	bucket          string
	listObjectsFn   func(ctx context.Context, prefix string, maxKeys int) ([]spaces.ObjectInfo, error)
	uploadFn        func(ctx context.Context, localPath, folder, objectName string) (string, error)
	deleteObjectFn  func(ctx context.Context, key string) error
	deleteObjectsFn func(ctx context.Context, keys []string) []spaces.DeleteResult
	createBucketFn  func(ctx context.Context, name, region string) error
	deleteBucketFn  func(ctx context.Context, name string) error
	bucketInfoFn    func(ctx context.Context, name string) (map[string]interface{}, error)
	listBucketsFn   func(ctx context.Context) (map[string]interface{}, error)
}

func (f *fakeStore) Bucket() string {
	if f.bucket != "" {
		return f.bucket
	}
	return "test-bucket"
}

func (f *fakeStore) ListObjects(ctx context.Context, prefix string, maxKeys int) ([]spaces.ObjectInfo, error) {
	if f.listObjectsFn != nil {
		return f.listObjectsFn(ctx, prefix, maxKeys)
	}
	return []spaces.ObjectInfo{}, nil
}

func (f *fakeStore) Upload(ctx context.Context, localPath, folder, objectName string) (string, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, localPath, folder, objectName)
	}
	return spaces.ObjectKey(folder, objectName), nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, key string) error {
	if f.deleteObjectFn != nil {
		return f.deleteObjectFn(ctx, key)
	}
	return nil
}

func (f *fakeStore) DeleteObjects(ctx context.Context, keys []string) []spaces.DeleteResult {
	if f.deleteObjectsFn != nil {
		return f.deleteObjectsFn(ctx, keys)
	}
	results := make([]spaces.DeleteResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, spaces.DeleteResult{Key: key, Success: true})
	}
	return results
}

func (f *fakeStore) CreateBucket(ctx context.Context, name, region string) error {
	if f.createBucketFn != nil {
		return f.createBucketFn(ctx, name, region)
	}
	return nil
}

func (f *fakeStore) DeleteBucket(ctx context.Context, name string) error {
	if f.deleteBucketFn != nil {
		return f.deleteBucketFn(ctx, name)
	}
	return nil
}

func (f *fakeStore) BucketInfo(ctx context.Context, name string) (map[string]interface{}, error) {
	if f.bucketInfoFn != nil {
		return f.bucketInfoFn(ctx, name)
	}
	return map[string]interface{}{"name": name}, nil
}

func (f *fakeStore) ListBuckets(ctx context.Context) (map[string]interface{}, error) {
	if f.listBucketsFn != nil {
		return f.listBucketsFn(ctx)
	}
	return map[string]interface{}{"buckets": []interface{}{}, "count": 0}, nil
}

// fakeControlPlane implements ControlPlane the same way.
type fakeControlPlane struct {
	listAgentsFn   func(ctx context.Context) (map[string]interface{}, error)
	createAgentFn  func(ctx context.Context, req genai.AgentCreateRequest) (map[string]interface{}, error)
	getAgentFn     func(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	deleteAgentFn  func(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	attachFn       func(ctx context.Context, agentUUID, kbUUID string) (map[string]interface{}, error)
	listKeysFn     func(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	createKeyFn    func(ctx context.Context, agentUUID, name string) (map[string]interface{}, error)
	deleteKeyFn    func(ctx context.Context, agentUUID, apiKeyUUID string) (map[string]interface{}, error)
	listKBsFn      func(ctx context.Context) (map[string]interface{}, error)
	createKBFn     func(ctx context.Context, name, description string) (map[string]interface{}, error)
	getKBFn        func(ctx context.Context, kbUUID string) (map[string]interface{}, error)
	deleteKBFn     func(ctx context.Context, kbUUID string) (map[string]interface{}, error)
	listSourcesFn  func(ctx context.Context, kbUUID string) (map[string]interface{}, error)
	createJobFn    func(ctx context.Context, kbUUID string, dataSourceUUIDs []string) (map[string]interface{}, error)
	getJobFn       func(ctx context.Context, jobUUID string) (map[string]interface{}, error)
	listModelsFn   func(ctx context.Context, usecases []string, publicOnly bool) (map[string]interface{}, error)
	listRegionsFn  func(ctx context.Context) (map[string]interface{}, error)
	listSearchFn   func(ctx context.Context) (map[string]interface{}, error)
	listSpacesFn   func(ctx context.Context) (map[string]interface{}, error)
	getWorkspaceFn func(ctx context.Context, workspaceUUID string) (map[string]interface{}, error)
}

func empty() (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (f *fakeControlPlane) ListAgents(ctx context.Context) (map[string]interface{}, error) {
	if f.listAgentsFn != nil {
		return f.listAgentsFn(ctx)
	}
	return empty()
}

func (f *fakeControlPlane) CreateAgent(ctx context.Context, req genai.AgentCreateRequest) (map[string]interface{}, error) {
	if f.createAgentFn != nil {
		return f.createAgentFn(ctx, req)
	}
	return empty()
}

func (f *fakeControlPlane) GetAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	if f.getAgentFn != nil {
		return f.getAgentFn(ctx, agentUUID)
	}
	return empty()
}

func (f *fakeControlPlane) DeleteAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	if f.deleteAgentFn != nil {
		return f.deleteAgentFn(ctx, agentUUID)
	}
	return empty()
}

func (f *fakeControlPlane) AttachKnowledgeBase(ctx context.Context, agentUUID, kbUUID string) (map[string]interface{}, error) {
	if f.attachFn != nil {
		return f.attachFn(ctx, agentUUID, kbUUID)
	}
	return empty()
}

func (f *fakeControlPlane) ListAgentAPIKeys(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	if f.listKeysFn != nil {
		return f.listKeysFn(ctx, agentUUID)
	}
	return empty()
}

func (f *fakeControlPlane) CreateAgentAPIKey(ctx context.Context, agentUUID, name string) (map[string]interface{}, error) {
	if f.createKeyFn != nil {
		return f.createKeyFn(ctx, agentUUID, name)
	}
	return empty()
}

func (f *fakeControlPlane) DeleteAgentAPIKey(ctx context.Context, agentUUID, apiKeyUUID string) (map[string]interface{}, error) {
	if f.deleteKeyFn != nil {
		return f.deleteKeyFn(ctx, agentUUID, apiKeyUUID)
	}
	return empty()
}

func (f *fakeControlPlane) ListKnowledgeBases(ctx context.Context) (map[string]interface{}, error) {
	if f.listKBsFn != nil {
		return f.listKBsFn(ctx)
	}
	return empty()
}

func (f *fakeControlPlane) CreateKnowledgeBase(ctx context.Context, name, description string) (map[string]interface{}, error) {
	if f.createKBFn != nil {
		return f.createKBFn(ctx, name, description)
	}
	return empty()
}

func (f *fakeControlPlane) GetKnowledgeBase(ctx context.Context, kbUUID string) (map[string]interface{}, error) {
	if f.getKBFn != nil {
		return f.getKBFn(ctx, kbUUID)
	}
	return empty()
}

func (f *fakeControlPlane) DeleteKnowledgeBase(ctx context.Context, kbUUID string) (map[string]interface{}, error) {
	if f.deleteKBFn != nil {
		return f.deleteKBFn(ctx, kbUUID)
	}
	return empty()
}

func (f *fakeControlPlane) ListKnowledgeBaseDataSources(ctx context.Context, kbUUID string) (map[string]interface{}, error) {
	if f.listSourcesFn != nil {
		return f.listSourcesFn(ctx, kbUUID)
	}
	return empty()
}

func (f *fakeControlPlane) CreateIndexingJob(ctx context.Context, kbUUID string, dataSourceUUIDs []string) (map[string]interface{}, error) {
	if f.createJobFn != nil {
		return f.createJobFn(ctx, kbUUID, dataSourceUUIDs)
	}
	return empty()
}

func (f *fakeControlPlane) GetIndexingJob(ctx context.Context, jobUUID string) (map[string]interface{}, error) {
	if f.getJobFn != nil {
		return f.getJobFn(ctx, jobUUID)
	}
	return empty()
}

func (f *fakeControlPlane) ListModels(ctx context.Context, usecases []string, publicOnly bool) (map[string]interface{}, error) {
	if f.listModelsFn != nil {
		return f.listModelsFn(ctx, usecases, publicOnly)
	}
	return empty()
}

func (f *fakeControlPlane) ListDatacenterRegions(ctx context.Context) (map[string]interface{}, error) {
	if f.listRegionsFn != nil {
		return f.listRegionsFn(ctx)
	}
	return empty()
}

func (f *fakeControlPlane) ListOpenSearchDatabases(ctx context.Context) (map[string]interface{}, error) {
	if f.listSearchFn != nil {
		return f.listSearchFn(ctx)
	}
	return empty()
}

func (f *fakeControlPlane) ListWorkspaces(ctx context.Context) (map[string]interface{}, error) {
	if f.listSpacesFn != nil {
		return f.listSpacesFn(ctx)
	}
	return empty()
}

func (f *fakeControlPlane) GetWorkspace(ctx context.Context, workspaceUUID string) (map[string]interface{}, error) {
	if f.getWorkspaceFn != nil {
		return f.getWorkspaceFn(ctx, workspaceUUID)
	}
	return empty()
}

// newTestServer wires fakes into a Server with the test bearer token set.
func newTestServer(store ObjectStore, genAI ControlPlane) *Server {
	if store == nil {
		store = &fakeStore{}
	}
	if genAI == nil {
		genAI = &fakeControlPlane{}
	}
	cfg := Config{
		Port:           "8080",
		APIBearerToken: testBearerToken,
	}
	return NewServer(cfg, store, genAI, logger.New("gateway-test"))
}

// doJSON sends a request through the full router with the test token and
// decodes the JSON envelope.
func doJSON(t *testing.T, s *Server, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Authorization", "Bearer "+testBearerToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return serve(t, s, req)
}

// serve runs an already-built request through the router.
func serve(t *testing.T, s *Server, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not valid JSON: %v (body: %s)", err, rec.Body.String())
	}
	return rec.Code, payload
}
