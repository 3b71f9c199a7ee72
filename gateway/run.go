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

// Package gateway is the HTTP surface of the OceanKit GenAI gateway: a
// stateless JSON API bridging callers to the DigitalOcean GenAI control
// plane and Spaces object storage. Every route runs the same pipeline:
// auth gate, input validation, one adapter call, uniform envelope.
package gateway

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"oceankit/gateway/connectors/genai"
	"oceankit/gateway/connectors/spaces"
	"oceankit/gateway/shared/logger"
)

// Run loads the configuration, constructs the adapters once, and serves
// until the process dies. Adapter construction failures are fatal so a
// misconfigured gateway never comes up half-working.
func Run() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	store, err := spaces.NewClient(context.Background(), spaces.Config{
		Bucket:    cfg.SpacesBucket,
		Region:    cfg.SpacesRegion,
		AccessKey: cfg.SpacesKey,
		SecretKey: cfg.SpacesSecret,
		Endpoint:  cfg.SpacesEndpoint,
	})
	if err != nil {
		log.Fatalf("failed to initialize Spaces client: %v", err)
	}

	genAI, err := genai.NewClient(genai.Config{
		Token: cfg.DigitalOceanToken,
		Defaults: genai.Defaults{
			ModelUUID:          cfg.DefaultModelUUID,
			WorkspaceUUID:      cfg.DefaultWorkspaceUUID,
			ProjectUUID:        cfg.DefaultProjectUUID,
			Region:             cfg.DefaultRegion,
			EmbeddingModelUUID: cfg.DefaultEmbeddingModelUUID,
			DatabaseID:         cfg.DefaultDatabaseID,
			DatasourceBucket:   cfg.DefaultDatasourceBucket,
		},
	})
	if err != nil {
		log.Fatalf("failed to initialize DigitalOcean client: %v", err)
	}

	server := NewServer(cfg, store, genAI, logger.New("gateway"))
	r := server.Router()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)
	log.Printf("OceanKit gateway listening on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

// Router builds the full route table. Liveness and metrics sit outside
// the auth gate; everything under /api sits behind it.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)

	// Health check
	r.HandleFunc("/", s.healthHandler).Methods("GET")

	// Metrics endpoint
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)

	// Object storage
	api.HandleFunc("/files", s.handle("list_files", s.listFiles)).Methods("GET")
	api.HandleFunc("/files", s.handle("upload_files", s.uploadFiles)).Methods("POST")
	api.HandleFunc("/files", s.handle("delete_files", s.deleteFiles)).Methods("DELETE")
	api.HandleFunc("/buckets", s.handle("list_buckets", s.listBuckets)).Methods("GET")
	api.HandleFunc("/buckets", s.handle("create_bucket", s.createBucket)).Methods("POST")
	api.HandleFunc("/buckets/{bucket_name}", s.handle("get_bucket", s.getBucket)).Methods("GET")
	api.HandleFunc("/buckets/{bucket_name}", s.handle("delete_bucket", s.deleteBucket)).Methods("DELETE")

	// Knowledge bases
	api.HandleFunc("/knowledgebase", s.handle("list_knowledge_bases", s.listKnowledgeBases)).Methods("GET")
	api.HandleFunc("/knowledgebase", s.handle("create_knowledge_base", s.createKnowledgeBase)).Methods("POST")
	api.HandleFunc("/knowledgebase/reindex", s.handle("reindex_knowledge_base", s.reindexKnowledgeBase)).Methods("POST")
	api.HandleFunc("/knowledgebase/indexing-jobs/{job_id}", s.handle("get_indexing_job", s.getIndexingJob)).Methods("GET")
	api.HandleFunc("/knowledgebase/{kb_id}", s.handle("get_knowledge_base", s.getKnowledgeBase)).Methods("GET")
	api.HandleFunc("/knowledgebase/{kb_id}", s.handle("delete_knowledge_base", s.deleteKnowledgeBase)).Methods("DELETE")
	api.HandleFunc("/knowledgebase/{kb_id}/datasources", s.handle("list_data_sources", s.listKnowledgeBaseDataSources)).Methods("GET")

	// Agents
	api.HandleFunc("/agents", s.handle("list_agents", s.listAgents)).Methods("GET")
	api.HandleFunc("/agents", s.handle("create_agent", s.createAgent)).Methods("POST")
	api.HandleFunc("/agents/{agent_id}", s.handle("get_agent", s.getAgent)).Methods("GET")
	api.HandleFunc("/agents/{agent_id}", s.handle("delete_agent", s.deleteAgent)).Methods("DELETE")
	api.HandleFunc("/agents/{agent_id}/api-keys", s.handle("list_agent_api_keys", s.listAgentAPIKeys)).Methods("GET")
	api.HandleFunc("/agents/{agent_id}/api-keys", s.handle("create_agent_api_key", s.createAgentAPIKey)).Methods("POST")
	api.HandleFunc("/agents/{agent_id}/api-keys/{key_id}", s.handle("delete_agent_api_key", s.deleteAgentAPIKey)).Methods("DELETE")
	api.HandleFunc("/agents/{agent_id}/attach-knowledgebase", s.handle("attach_knowledge_base", s.attachKnowledgeBase)).Methods("POST")

	// Catalogue and environment
	api.HandleFunc("/models", s.handle("list_models", s.listModels)).Methods("GET")
	api.HandleFunc("/models/regions", s.handle("list_model_regions", s.listModelRegions)).Methods("GET")
	api.HandleFunc("/opensearch-databases", s.handle("list_opensearch_databases", s.listOpenSearchDatabases)).Methods("GET")
	api.HandleFunc("/workspaces", s.handle("list_workspaces", s.listWorkspaces)).Methods("GET")
	api.HandleFunc("/workspaces/{workspace_id}", s.handle("get_workspace", s.getWorkspace)).Methods("GET")

	return r
}

// healthHandler is the unauthenticated liveness probe. It reports process
// liveness only and touches no backend.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"message": "DO API is running",
	})
}
