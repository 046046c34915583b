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
	"fmt"
	"net/smtp"

	"github.com/go-atlas/atlas/internal/engine/model"
)

// EmailNotifier sends invitation mail over SMTP.
type EmailNotifier struct {
	email Email
}

func NewEmailNotifier(email Email) *EmailNotifier {
	return &EmailNotifier{email: email}
}

func (n *EmailNotifier) SendInvitation(ctx context.Context, inv *model.MapInvitation, mapName, inviteUrl string) error {
	subject := fmt.Sprintf("You have been invited to the map %q", mapName)
	body := fmt.Sprintf(
		"You have been invited to collaborate on %q as %s.\r\n\r\n"+
			"Open the link below to accept or decline. The invitation expires on %s.\r\n\r\n%s\r\n",
		mapName, inv.Role, inv.ExpiresAt.Format("2006-01-02 15:04 MST"), inviteUrl)
	return n.send(ctx, inv.Email, subject, body)
}

func (n *EmailNotifier) SendResponseNotice(ctx context.Context, inviterEmail string, inv *model.MapInvitation, action model.RespondAction) error {
	subject := fmt.Sprintf("%s %sed your map invitation", inv.Email, action)
	body := fmt.Sprintf("%s has %sed your invitation to map %s.\r\n", inv.Email, action, inv.MapId)
	return n.send(ctx, inviterEmail, subject, body)
}

func (n *EmailNotifier) send(_ context.Context, to, subject, body string) error {
	if err := n.validate(); err != nil {
		return err
	}
	msg := "From: " + n.email.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body

	var auth smtp.Auth
	if n.email.Username != "" {
		auth = smtp.PlainAuth("", n.email.Username, n.email.Password, n.email.SmtpHost)
	}
	addr := fmt.Sprintf("%s:%d", n.email.SmtpHost, n.email.SmtpPort)
	if err := smtp.SendMail(addr, auth, n.email.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *EmailNotifier) validate() error {
	if n.email.SmtpHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if n.email.SmtpPort <= 0 {
		return fmt.Errorf("smtp port is required")
	}
	if n.email.From == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}
