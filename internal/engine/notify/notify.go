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

package notify

import (
	"context"

	"github.com/google/wire"

	"github.com/go-atlas/atlas/internal/engine/model"
	"github.com/go-atlas/atlas/pkg/log"
)

// INotifier delivers invitation mail. Delivery is best effort: callers fire
// it asynchronously and a failure never rolls back the state change that
// triggered it.
type INotifier interface {
	// SendInvitation mails the invite link to the invitee.
	SendInvitation(ctx context.Context, inv *model.MapInvitation, mapName, inviteUrl string) error
	// SendResponseNotice tells the inviter how the invitee responded.
	SendResponseNotice(ctx context.Context, inviterEmail string, inv *model.MapInvitation, action model.RespondAction) error
}

// LogNotifier writes notifications to the log instead of a mail gateway.
// It is the default when no SMTP host is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendInvitation(_ context.Context, inv *model.MapInvitation, mapName, inviteUrl string) error {
	log.Infow("invitation notification",
		"email", inv.Email, "map", mapName, "role", inv.Role, "url", inviteUrl)
	return nil
}

func (n *LogNotifier) SendResponseNotice(_ context.Context, inviterEmail string, inv *model.MapInvitation, action model.RespondAction) error {
	log.Infow("invitation response notification",
		"inviter", inviterEmail, "email", inv.Email, "action", string(action))
	return nil
}

// Email carries the SMTP settings for outbound invitation mail.
type Email struct {
	SmtpHost string `mapstructure:"smtpHost"`
	SmtpPort int    `mapstructure:"smtpPort"`
	From     string `mapstructure:"from"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ProvideNotifier picks the email notifier when SMTP is configured and the
// log notifier otherwise.
func ProvideNotifier(email Email) INotifier {
	if email.SmtpHost != "" {
		return NewEmailNotifier(email)
	}
	return NewLogNotifier()
}

var ProviderSet = wire.NewSet(ProvideNotifier)
