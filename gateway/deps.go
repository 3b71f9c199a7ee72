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
	"context"

	"oceankit/gateway/connectors/genai"
	"oceankit/gateway/connectors/spaces"
	"oceankit/gateway/shared/logger"
)

// ObjectStore is the object-storage surface the handlers consume. The
// Spaces client satisfies it; tests substitute fakes.
type ObjectStore interface {
	Bucket() string
	ListObjects(ctx context.Context, prefix string, maxKeys int) ([]spaces.ObjectInfo, error)
	Upload(ctx context.Context, localPath, folder, objectName string) (string, error)
	DeleteObject(ctx context.Context, key string) error
	DeleteObjects(ctx context.Context, keys []string) []spaces.DeleteResult
	CreateBucket(ctx context.Context, name, region string) error
	DeleteBucket(ctx context.Context, name string) error
	BucketInfo(ctx context.Context, name string) (map[string]interface{}, error)
	ListBuckets(ctx context.Context) (map[string]interface{}, error)
}

// ControlPlane is the GenAI control-plane surface the handlers consume.
type ControlPlane interface {
	ListAgents(ctx context.Context) (map[string]interface{}, error)
	CreateAgent(ctx context.Context, req genai.AgentCreateRequest) (map[string]interface{}, error)
	GetAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	DeleteAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	AttachKnowledgeBase(ctx context.Context, agentUUID, knowledgeBaseUUID string) (map[string]interface{}, error)

	ListAgentAPIKeys(ctx context.Context, agentUUID string) (map[string]interface{}, error)
	CreateAgentAPIKey(ctx context.Context, agentUUID, name string) (map[string]interface{}, error)
	DeleteAgentAPIKey(ctx context.Context, agentUUID, apiKeyUUID string) (map[string]interface{}, error)

	ListKnowledgeBases(ctx context.Context) (map[string]interface{}, error)
	CreateKnowledgeBase(ctx context.Context, name, description string) (map[string]interface{}, error)
	GetKnowledgeBase(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error)
	DeleteKnowledgeBase(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error)
	ListKnowledgeBaseDataSources(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error)

	CreateIndexingJob(ctx context.Context, knowledgeBaseUUID string, dataSourceUUIDs []string) (map[string]interface{}, error)
	GetIndexingJob(ctx context.Context, indexingJobUUID string) (map[string]interface{}, error)

	ListModels(ctx context.Context, usecases []string, publicOnly bool) (map[string]interface{}, error)
	ListDatacenterRegions(ctx context.Context) (map[string]interface{}, error)

	ListOpenSearchDatabases(ctx context.Context) (map[string]interface{}, error)

	ListWorkspaces(ctx context.Context) (map[string]interface{}, error)
	GetWorkspace(ctx context.Context, workspaceUUID string) (map[string]interface{}, error)
}

// Server holds the shared clients and wires them into route handlers. The
// clients are constructed once in Run and reused for every request.
type Server struct {
	cfg   Config
	store ObjectStore
	genAI ControlPlane
	log   *logger.Logger
}

// NewServer creates a Server over already-constructed adapters.
func NewServer(cfg Config, store ObjectStore, genAI ControlPlane, log *logger.Logger) *Server {
	return &Server{
		cfg:   cfg,
		store: store,
		genAI: genAI,
		log:   log,
	}
}
