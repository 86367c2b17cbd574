package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "invitation"}}<p>Hello {{.Name}},</p>
<p>{{.InvitedBy}} has invited you to join {{.Gallery}} as an exhibiting artist.</p>
<p><a href="{{.Link}}">Set up your artist profile</a></p>
<p>Your invitation code is <strong>{{.Code}}</strong>. It expires on {{.ExpiresAt}}.</p>{{end}}

{{define "password_reset"}}<p>Hello {{.Name}},</p>
<p>A password reset was requested for your {{.Gallery}} account.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link expires in {{.TTL}}. If you did not request it you can ignore this email.</p>{{end}}

{{define "artwork_review"}}<p>Hello {{.Name}},</p>
<p>Your artwork <em>{{.Title}}</em> has been {{.Outcome}} by the {{.Gallery}} team.</p>
{{if .Note}}<p>Note from the reviewer: {{.Note}}</p>{{end}}{{end}}
`))

func renderEmail(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// withQuery appends key=value to base, keeping any query string already present.
func withQuery(base, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + url.Values{key: {value}}.Encode()
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

func invitationEmail(gallery, name, invitedBy, code, setupURL string, expiresAt time.Time) (string, string, error) {
	if invitedBy == "" {
		invitedBy = "The gallery team"
	}
	body, err := renderEmail("invitation", map[string]interface{}{
		"Name":      name,
		"InvitedBy": invitedBy,
		"Gallery":   gallery,
		"Code":      code,
		"Link":      withQuery(setupURL, "code", code),
		"ExpiresAt": expiresAt.UTC().Format("January 2, 2006"),
	})
	return "You're invited to exhibit at " + gallery, body, err
}

func passwordResetEmail(gallery, name, token, resetURL string, ttl time.Duration) (string, string, error) {
	body, err := renderEmail("password_reset", map[string]interface{}{
		"Name":    name,
		"Gallery": gallery,
		"Link":    withQuery(resetURL, "token", token),
		"TTL":     ttl.String(),
	})
	return "Reset your " + gallery + " password", body, err
}

func artworkReviewEmail(gallery, name, title string, approved bool, note string) (string, string, error) {
	outcome := "declined"
	if approved {
		outcome = "approved"
	}
	body, err := renderEmail("artwork_review", map[string]interface{}{
		"Name":    name,
		"Gallery": gallery,
		"Title":   title,
		"Outcome": outcome,
		"Note":    note,
	})
	return fmt.Sprintf("Your artwork %q was %s", title, outcome), body, err
}
