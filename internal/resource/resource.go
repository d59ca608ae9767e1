// Package resource resolves named bake resources: materials, render paths
// and models.
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MkFair/rbfx/internal/engine/material"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
)

// Cache resolves resources by name. File-backed resources are searched in
// the configured directories; parsed resources are memoized. Models are
// registered programmatically.
type Cache struct {
	mu sync.RWMutex

	searchPaths []string
	files       map[string][]byte

	materials   map[string]*material.Material
	renderPaths map[string]*renderpath.RenderPath
	models      map[string]*model.Model
}

// NewCache creates an empty resource cache.
func NewCache() *Cache {
	return &Cache{
		files:       make(map[string][]byte),
		materials:   make(map[string]*material.Material),
		renderPaths: make(map[string]*renderpath.RenderPath),
		models:      make(map[string]*model.Model),
	}
}

// AddSearchPath adds a directory searched for file-backed resources.
// Paths added later take priority.
func (c *Cache) AddSearchPath(dir string) {
	c.mu.Lock()
	c.searchPaths = append(c.searchPaths, dir)
	c.mu.Unlock()
}

// AddFile registers in-memory bytes for a resource name, shadowing any
// file on disk. Used by tests and generated resources.
func (c *Cache) AddFile(name string, data []byte) {
	c.mu.Lock()
	c.files[name] = data
	c.mu.Unlock()
}

// load returns the raw bytes for a resource name.
func (c *Cache) load(name string) ([]byte, error) {
	c.mu.RLock()
	if data, ok := c.files[name]; ok {
		c.mu.RUnlock()
		return data, nil
	}
	paths := c.searchPaths
	c.mu.RUnlock()

	// Search directories in reverse order (last added = highest priority).
	for i := len(paths) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(paths[i], name))
		if err == nil {
			c.mu.Lock()
			c.files[name] = data
			c.mu.Unlock()
			return data, nil
		}
	}

	return nil, fmt.Errorf("resource not found: %s", name)
}

// Material resolves a material resource by name.
func (c *Cache) Material(name string) (*material.Material, error) {
	c.mu.RLock()
	if m, ok := c.materials[name]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	data, err := c.load(name)
	if err != nil {
		return nil, err
	}
	m, err := material.Load(name, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.materials[name] = m
	c.mu.Unlock()
	return m, nil
}

// RenderPath resolves a render path resource by name.
func (c *Cache) RenderPath(name string) (*renderpath.RenderPath, error) {
	c.mu.RLock()
	if rp, ok := c.renderPaths[name]; ok {
		c.mu.RUnlock()
		return rp, nil
	}
	c.mu.RUnlock()

	data, err := c.load(name)
	if err != nil {
		return nil, err
	}
	rp, err := renderpath.Load(name, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.renderPaths[name] = rp
	c.mu.Unlock()
	return rp, nil
}

// AddModel registers a model resource under its name.
func (c *Cache) AddModel(m *model.Model) {
	c.mu.Lock()
	c.models[m.Name()] = m
	c.mu.Unlock()
}

// Model resolves a registered model by name.
func (c *Cache) Model(name string) (*model.Model, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.models[name]
	if !ok {
		return nil, fmt.Errorf("model not registered: %s", name)
	}
	return m, nil
}
