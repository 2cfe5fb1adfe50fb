// Copyright © 2025 The declnav authors

package lsp

import (
	"sync"

	"github.com/declnav/declnav/fixture"
	"github.com/declnav/declnav/syntax"
)

// Document represents an open text document tracked by the LSP server.
type Document struct {
	mu       sync.Mutex
	URI      string
	Version  int32
	Content  string
	tree     *syntax.Tree
	parseErr error
}

// parse loads the document content as a fixture and caches the tree. A
// parse failure leaves the previous tree in place so navigation keeps
// working while the user edits.
func (d *Document) parse() {
	tree, err := fixture.Parse(uriToPath(d.URI), []byte(d.Content))
	d.parseErr = err
	if err == nil {
		d.tree = tree
	}
}

// Tree returns the most recent good tree for the document.
func (d *Document) Tree() *syntax.Tree {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and parses it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	doc.parse()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change updates a document's content (full sync) and re-parses it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.parse()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
