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
	"testing"
)

func TestAddFunc_DuplicateName(t *testing.T) {
	c := New()

	if err := c.AddFunc("sweep", "@hourly", func() {}); err != nil {
		t.Fatalf("AddFunc() error = %v", err)
	}
	if err := c.AddFunc("sweep", "@hourly", func() {}); err == nil {
		t.Error("expected error on duplicate entry name")
	}
}

func TestAddFunc_InvalidSpec(t *testing.T) {
	c := New()

	if err := c.AddFunc("bad", "not a spec", func() {}); err == nil {
		t.Error("expected error on invalid cron spec")
	}
}

func TestRemove(t *testing.T) {
	c := New()

	if err := c.AddFunc("sweep", "@hourly", func() {}); err != nil {
		t.Fatalf("AddFunc() error = %v", err)
	}
	if err := c.Remove("sweep"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := c.Remove("sweep"); err == nil {
		t.Error("expected error removing missing entry")
	}
	if len(c.Entries()) != 0 {
		t.Errorf("expected no entries, got %d", len(c.Entries()))
	}
}

func TestGlobal(t *testing.T) {
	if err := AddFunc("before-init", "@hourly", func() {}); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}

	Init()
	defer Stop()

	if Get() == nil {
		t.Fatal("global cron not initialized")
	}
	if err := AddFunc("global-sweep", "@hourly", func() {}); err != nil {
		t.Errorf("AddFunc() error = %v", err)
	}
	Start()
}
