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

package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConf(t *testing.T) {
	dir := t.TempDir()
	data := `
[Log]
Output = "console"
Level = "debug"

[Http]
Host = "127.0.0.1"
Port = 8080
ContextPath = "/api/v1"

[Http.Auth]
SecretKey = "test-secret"
AccessExpire = 30
RefreshExpire = 10080
RedisKeyPrefix = "atlas:user:token:"

[Database]
Type = "mysql"
Host = "localhost"
Port = 3306
User = "atlas"
Password = "atlas"
DB = "atlas"

[Redis]
Mode = "single"
Address = "localhost:6379"

[Invite]
urlBase = "https://atlas.example.com/invite/"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got := NewConf(dir)

	if got.Http.Port != 8080 {
		t.Errorf("Http.Port = %d, want 8080", got.Http.Port)
	}
	if got.Http.ContextPath != "/api/v1" {
		t.Errorf("Http.ContextPath = %q, want /api/v1", got.Http.ContextPath)
	}
	if got.Http.Auth.SecretKey != "test-secret" {
		t.Errorf("Http.Auth.SecretKey = %q", got.Http.Auth.SecretKey)
	}
	if got.Database.DB != "atlas" {
		t.Errorf("Database.DB = %q, want atlas", got.Database.DB)
	}
	if got.Redis.Address != "localhost:6379" {
		t.Errorf("Redis.Address = %q", got.Redis.Address)
	}
	if got.Invite.UrlBase != "https://atlas.example.com/invite/" {
		t.Errorf("Invite.UrlBase = %q", got.Invite.UrlBase)
	}
	// sweepSpec is absent from the file, so the default applies.
	if got.Invite.SweepSpec != "@hourly" {
		t.Errorf("Invite.SweepSpec = %q, want @hourly", got.Invite.SweepSpec)
	}
}
