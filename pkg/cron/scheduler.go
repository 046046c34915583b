// Copyright 2025 Atlas Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cron

import (
	"errors"
	"fmt"
	"sync"

	robcron "github.com/robfig/cron/v3"

	"github.com/go-atlas/atlas/pkg/log"
)

var (
	// ErrNotInitialized is returned when trying to use the global cron before initialization
	ErrNotInitialized = errors.New("global cron instance is not initialized")
)

var (
	globalCron *Cron
	globalMu   sync.RWMutex
	once       sync.Once
)

// Entry is a named scheduled job.
type Entry struct {
	Name string
	Spec string
	ID   robcron.EntryID
}

// Cron wraps a robfig/cron scheduler with named entries and panic recovery.
type Cron struct {
	mu      sync.Mutex
	cron    *robcron.Cron
	entries map[string]*Entry
}

// New creates a cron scheduler. Specs use the standard 5-field format.
func New() *Cron {
	return &Cron{
		cron:    robcron.New(robcron.WithChain(robcron.Recover(robcron.DefaultLogger))),
		entries: make(map[string]*Entry),
	}
}

// AddFunc schedules fn under a unique name.
func (c *Cron) AddFunc(name, spec string, fn func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[name]; exists {
		return fmt.Errorf("cron entry already exists: %s", name)
	}

	id, err := c.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("failed to add cron entry %s: %w", name, err)
	}

	c.entries[name] = &Entry{Name: name, Spec: spec, ID: id}
	log.Infow("cron entry registered", "name", name, "spec", spec)
	return nil
}

// Remove removes a named entry.
func (c *Cron) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[name]
	if !exists {
		return fmt.Errorf("cron entry not found: %s", name)
	}
	c.cron.Remove(entry.ID)
	delete(c.entries, name)
	return nil
}

// Entries returns all registered entries.
func (c *Cron) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

// Start starts the scheduler in its own goroutine.
func (c *Cron) Start() {
	c.cron.Start()
}

// Stop stops the scheduler; running jobs finish.
func (c *Cron) Stop() {
	c.cron.Stop()
}

// Init initializes the global cron instance.
func Init() {
	once.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		globalCron = New()
	})
}

// Get returns the global cron instance, nil if not initialized.
func Get() *Cron {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCron
}

// AddFunc adds a func to the global cron instance.
func AddFunc(name, spec string, fn func()) error {
	globalMu.RLock()
	c := globalCron
	globalMu.RUnlock()

	if c == nil {
		return ErrNotInitialized
	}
	return c.AddFunc(name, spec, fn)
}

// Start starts the global cron scheduler.
func Start() {
	globalMu.RLock()
	c := globalCron
	globalMu.RUnlock()

	if c != nil {
		c.Start()
	}
}

// Stop stops the global cron scheduler.
func Stop() {
	globalMu.RLock()
	c := globalCron
	globalMu.RUnlock()

	if c != nil {
		c.Stop()
	}
}
