// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the decoded form of a graph data file: a flat list of
// node records and a flat list of link records, with all attributes
// left raw for [Accessor] evaluation at build time.
type Document struct {
	Nodes []map[string]any `json:"nodes" yaml:"nodes"`
	Links []map[string]any `json:"links" yaml:"links"`
}

// Formats are the encodings a graph document can be stored in.
type Formats int32

const (
	JSON Formats = iota
	YAML
)

// FormatForPath returns the document format implied by a file path or
// URL, based on its extension. Unknown extensions are JSON.
func FormatForPath(p string) Formats {
	if u, err := url.Parse(p); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Decode decodes a graph document from raw bytes.
func Decode(data []byte, fmts Formats) (*Document, error) {
	doc := &Document{}
	switch fmts {
	case YAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("graph: decoding yaml document: %w", err)
		}
	default:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("graph: decoding json document: %w", err)
		}
	}
	return doc, nil
}

// maxDocumentSize caps remote document reads at 64 MB.
const maxDocumentSize = 64 << 20

// Fetch retrieves and decodes a graph document. The source may be an
// http or https URL or a local file path; the format is chosen from
// the extension via [FormatForPath].
func Fetch(ctx context.Context, source string) (*Document, error) {
	data, err := fetchBytes(ctx, source)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatForPath(source))
}

func fetchBytes(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("graph: fetching document: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("graph: fetching document: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("graph: fetching document %q: %s", source, resp.Status)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		if err != nil {
			return nil, fmt.Errorf("graph: reading document body: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("graph: reading document file: %w", err)
	}
	return data, nil
}
