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

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDomainErr(t *testing.T) {
	assert.True(t, IsDomainErr(ErrForbidden))
	assert.True(t, IsDomainErr(ErrLastEditorProtected))
	assert.False(t, IsDomainErr(errors.New("connection refused")))
	assert.False(t, IsDomainErr(nil))
}

func TestIsDomainErr_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("assign role: %w", ErrInvalidRole)
	assert.True(t, IsDomainErr(wrapped))
	assert.True(t, errors.Is(wrapped, ErrInvalidRole))
	assert.False(t, errors.Is(wrapped, ErrInvalidTarget))
}
