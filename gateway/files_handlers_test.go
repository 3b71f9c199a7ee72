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
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"oceankit/gateway/connectors/spaces"
)

// multipartUpload builds a POST /api/files request with the given file
// names and contents, all under the repeatable 'file' field. The folder
// goes in the query string.
func multipartUpload(t *testing.T, names []string, folder string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := writer.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("failed to build multipart body: %v", err)
		}
		fmt.Fprintf(part, "contents of %s", name)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to finalize multipart body: %v", err)
	}

	target := "/api/files"
	if folder != "" {
		target += "?folder=" + folder
	}
	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testBearerToken)
	return req
}

func TestListFiles(t *testing.T) {
	t.Run("returns files and count", func(t *testing.T) {
		store := &fakeStore{
			listObjectsFn: func(ctx context.Context, prefix string, maxKeys int) ([]spaces.ObjectInfo, error) {
				if prefix != "docs/" {
					t.Errorf("expected prefix docs/, got %q", prefix)
				}
				if maxKeys != 5 {
					t.Errorf("expected maxKeys 5, got %d", maxKeys)
				}
				return []spaces.ObjectInfo{
					{Key: "docs/a.txt", Size: 3, LastModified: time.Now()},
					{Key: "docs/b.txt", Size: 7, LastModified: time.Now()},
				}, nil
			},
		}
		s := newTestServer(store, nil)

		status, payload := doJSON(t, s, "GET", "/api/files?prefix=docs/&max_keys=5", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if payload["count"] != float64(2) {
			t.Errorf("expected count 2, got %v", payload["count"])
		}
	})

	t.Run("rejects non-integer max_keys", func(t *testing.T) {
		s := newTestServer(nil, nil)
		status, payload := doJSON(t, s, "GET", "/api/files?max_keys=lots", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if payload["message"] != "Query parameter 'max_keys' must be an integer" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})
}

func TestUploadFiles(t *testing.T) {
	t.Run("all files succeed", func(t *testing.T) {
		var uploadedPaths []string
		store := &fakeStore{
			uploadFn: func(ctx context.Context, localPath, folder, objectName string) (string, error) {
				uploadedPaths = append(uploadedPaths, localPath)
				return spaces.ObjectKey(folder, objectName), nil
			},
		}
		s := newTestServer(store, nil)

		req := multipartUpload(t, []string{"a.txt", "b.txt", "c.txt"}, "docs")
		status, payload := serve(t, s, req)

		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if payload["message"] != "All 3 file(s) uploaded successfully" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
		if payload["successful"] != float64(3) || payload["failed"] != float64(0) || payload["total"] != float64(3) {
			t.Errorf("unexpected summary counts: successful=%v failed=%v total=%v",
				payload["successful"], payload["failed"], payload["total"])
		}
		if payload["folder"] != "docs" {
			t.Errorf("expected folder docs, got %v", payload["folder"])
		}

		results, ok := payload["results"].([]interface{})
		if !ok || len(results) != 3 {
			t.Fatalf("expected 3 results, got %v", payload["results"])
		}
		first := results[0].(map[string]interface{})
		if first["filename"] != "a.txt" || first["key"] != "docs/a.txt" || first["success"] != true {
			t.Errorf("unexpected first result: %v", first)
		}

		// Staged temp files must be gone once the request completes.
		for _, path := range uploadedPaths {
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("temp file %s was not cleaned up", path)
			}
		}
	})

	t.Run("partial failure keeps input order and grades the message", func(t *testing.T) {
		store := &fakeStore{
			uploadFn: func(ctx context.Context, localPath, folder, objectName string) (string, error) {
				if objectName == "b.txt" {
					return "", fmt.Errorf("simulated storage failure")
				}
				return spaces.ObjectKey(folder, objectName), nil
			},
		}
		s := newTestServer(store, nil)

		req := multipartUpload(t, []string{"a.txt", "b.txt", "c.txt"}, "")
		status, payload := serve(t, s, req)

		if status != http.StatusOK {
			t.Fatalf("expected 200 despite partial failure, got %d", status)
		}
		if payload["message"] != "2 of 3 file(s) uploaded successfully" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
		if payload["successful"] != float64(2) || payload["failed"] != float64(1) || payload["total"] != float64(3) {
			t.Errorf("unexpected summary counts: successful=%v failed=%v total=%v",
				payload["successful"], payload["failed"], payload["total"])
		}
		if payload["folder"] != nil {
			t.Errorf("expected null folder when none given, got %v", payload["folder"])
		}

		results := payload["results"].([]interface{})
		for i, want := range []string{"a.txt", "b.txt", "c.txt"} {
			entry := results[i].(map[string]interface{})
			if entry["filename"] != want {
				t.Errorf("result %d out of order: expected %s, got %v", i, want, entry["filename"])
			}
		}
		failed := results[1].(map[string]interface{})
		if failed["success"] != false || failed["error"] == "" {
			t.Errorf("expected failed entry with error detail, got %v", failed)
		}
	})

	t.Run("all files fail", func(t *testing.T) {
		store := &fakeStore{
			uploadFn: func(ctx context.Context, localPath, folder, objectName string) (string, error) {
				return "", fmt.Errorf("simulated storage failure")
			},
		}
		s := newTestServer(store, nil)

		req := multipartUpload(t, []string{"a.txt"}, "")
		status, payload := serve(t, s, req)

		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if payload["message"] != "No files were uploaded successfully" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})

	t.Run("no files is a validation error", func(t *testing.T) {
		s := newTestServer(nil, nil)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		_ = writer.WriteField("other", "docs")
		_ = writer.Close()

		req := httptest.NewRequest("POST", "/api/files", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+testBearerToken)

		status, payload := serve(t, s, req)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if payload["message"] != "No files provided. Please include at least one 'file' field in the request." {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})

	t.Run("blank filenames are a validation error", func(t *testing.T) {
		s := newTestServer(nil, nil)
		req := multipartUpload(t, []string{"   "}, "")
		status, payload := serve(t, s, req)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if payload["message"] != "No valid files selected. Please provide at least one file with a filename." {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})

	t.Run("parts under a different field name are not uploads", func(t *testing.T) {
		s := newTestServer(nil, nil)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("files", "a.txt")
		if err != nil {
			t.Fatalf("failed to build multipart body: %v", err)
		}
		fmt.Fprint(part, "contents")
		_ = writer.Close()

		req := httptest.NewRequest("POST", "/api/files", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+testBearerToken)

		status, payload := serve(t, s, req)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if payload["message"] != "No files provided. Please include at least one 'file' field in the request." {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})
}

func TestDeleteFiles(t *testing.T) {
	t.Run("single key", func(t *testing.T) {
		var deletedKey string
		store := &fakeStore{
			deleteObjectFn: func(ctx context.Context, key string) error {
				deletedKey = key
				return nil
			},
		}
		s := newTestServer(store, nil)

		status, payload := doJSON(t, s, "DELETE", "/api/files?key=docs/a.txt", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if deletedKey != "docs/a.txt" {
			t.Errorf("expected docs/a.txt deleted, got %q", deletedKey)
		}
		if payload["message"] != "File deleted successfully" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
		if payload["key"] != "docs/a.txt" {
			t.Errorf("expected deleted key echoed back, got %v", payload["key"])
		}
	})

	t.Run("missing key and body", func(t *testing.T) {
		s := newTestServer(nil, nil)
		status, payload := doJSON(t, s, "DELETE", "/api/files", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if payload["message"] != "Query parameter 'key' is required" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})

	t.Run("batch delete with partial failure", func(t *testing.T) {
		store := &fakeStore{
			deleteObjectsFn: func(ctx context.Context, keys []string) []spaces.DeleteResult {
				results := make([]spaces.DeleteResult, 0, len(keys))
				for i, key := range keys {
					if i == 1 {
						results = append(results, spaces.DeleteResult{Key: key, Success: false, Error: "access denied"})
						continue
					}
					results = append(results, spaces.DeleteResult{Key: key, Success: true})
				}
				return results
			},
		}
		s := newTestServer(store, nil)

		status, payload := doJSON(t, s, "DELETE", "/api/files", map[string]interface{}{
			"keys": []string{"a.txt", "b.txt", "c.txt"},
		})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if payload["message"] != "2 of 3 file(s) deleted successfully" {
			t.Errorf("unexpected message: %v", payload["message"])
		}
	})
}
