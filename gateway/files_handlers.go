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
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"oceankit/gateway/shared/apierr"
)

// maxUploadMemory caps how much of a multipart body is held in memory
// before spilling to disk.
const maxUploadMemory = 32 << 20

// listFiles handles GET /api/files.
func (s *Server) listFiles(r *http.Request) (map[string]interface{}, error) {
	prefix := r.URL.Query().Get("prefix")

	maxKeys := 0
	if raw := r.URL.Query().Get("max_keys"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apierr.Validationf("Query parameter 'max_keys' must be an integer")
		}
		maxKeys = parsed
	}

	objects, err := s.store.ListObjects(r.Context(), prefix, maxKeys)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"files": objects,
		"count": len(objects),
	}, nil
}

// uploadResult is the per-file outcome of a multi-file upload.
type uploadResult struct {
	Filename string `json:"filename"`
	Key      string `json:"key,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// uploadFiles handles POST /api/files. The request is multipart form data
// with one or more parts named "file" and an optional "folder" query
// parameter. One failed file does not abort the rest; results come back in
// input order with a graded summary message.
func (s *Server) uploadFiles(r *http.Request) (map[string]interface{}, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, apierr.Validationf("No files provided. Please include at least one 'file' field in the request.")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		return nil, apierr.Validationf("No files provided. Please include at least one 'file' field in the request.")
	}

	valid := make([]*multipart.FileHeader, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if strings.TrimSpace(header.Filename) != "" {
			valid = append(valid, header)
		}
	}
	if len(valid) == 0 {
		return nil, apierr.Validationf("No valid files selected. Please provide at least one file with a filename.")
	}

	folder := r.URL.Query().Get("folder")

	results := make([]uploadResult, 0, len(valid))
	successful := 0
	for _, header := range valid {
		key, err := s.uploadOne(r, header, folder)
		if err != nil {
			promUploadedFiles.WithLabelValues("error").Inc()
			results = append(results, uploadResult{
				Filename: header.Filename,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}
		promUploadedFiles.WithLabelValues("success").Inc()
		successful++
		results = append(results, uploadResult{
			Filename: header.Filename,
			Key:      key,
			Success:  true,
		})
	}

	total := len(valid)
	var message string
	switch {
	case successful == total:
		message = fmt.Sprintf("All %d file(s) uploaded successfully", total)
	case successful > 0:
		message = fmt.Sprintf("%d of %d file(s) uploaded successfully", successful, total)
	default:
		message = "No files were uploaded successfully"
	}

	var folderField interface{}
	if folder != "" {
		folderField = folder
	}

	return map[string]interface{}{
		"message":    message,
		"results":    results,
		"successful": successful,
		"failed":     total - successful,
		"total":      total,
		"folder":     folderField,
	}, nil
}

// uploadOne stages a single multipart file on disk and hands the path to
// the object store. The temp file is always removed, success or not.
func (s *Server) uploadOne(r *http.Request, header *multipart.FileHeader, folder string) (string, error) {
	part, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer func() {
		_ = part.Close()
	}()

	temp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to stage file for upload: %w", err)
	}
	tempPath := temp.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := io.Copy(temp, part); err != nil {
		_ = temp.Close()
		return "", fmt.Errorf("failed to stage file for upload: %w", err)
	}
	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("failed to stage file for upload: %w", err)
	}

	return s.store.Upload(r.Context(), tempPath, folder, header.Filename)
}

// deleteFiles handles DELETE /api/files. A 'key' query parameter deletes
// one object; a JSON body {"keys": [...]} deletes a batch with per-key
// outcomes.
func (s *Server) deleteFiles(r *http.Request) (map[string]interface{}, error) {
	if key := r.URL.Query().Get("key"); key != "" {
		if strings.TrimSpace(key) == "" {
			return nil, apierr.Validationf("Key cannot be empty")
		}
		if err := s.store.DeleteObject(r.Context(), key); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"message": "File deleted successfully",
			"key":     key,
		}, nil
	}

	var body struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Query parameter 'key' is required")
	}
	if len(body.Keys) == 0 {
		return nil, apierr.Validationf("Query parameter 'key' is required")
	}
	for _, key := range body.Keys {
		if strings.TrimSpace(key) == "" {
			return nil, apierr.Validationf("All items in keys must be non-empty strings")
		}
	}

	results := s.store.DeleteObjects(r.Context(), body.Keys)
	deleted := 0
	for _, result := range results {
		if result.Success {
			deleted++
		}
	}

	var message string
	switch {
	case deleted == len(results):
		message = fmt.Sprintf("All %d file(s) deleted successfully", deleted)
	case deleted > 0:
		message = fmt.Sprintf("%d of %d file(s) deleted successfully", deleted, len(results))
	default:
		message = "No files were deleted successfully"
	}

	return map[string]interface{}{
		"message":       message,
		"results":       results,
		"deleted_count": deleted,
		"total_count":   len(results),
	}, nil
}
