package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

var inviteTmpl = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a202c;">You've been invited to FleetWise</h2>
    <p>You've been invited to join {{if .CompanyName}}<strong>{{.CompanyName}}</strong>{{else}}FleetWise{{end}} as a <strong>{{.RoleLabel}}</strong>.</p>
    <p>Click the button below to set your password and activate your account. This link expires in {{.ExpiryHours}} hours.</p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #2b6cb0; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Accept Invitation</a>
    </p>
    <p style="color: #718096; font-size: 13px;">If the button doesn't work, copy this link into your browser:<br>{{.Link}}</p>
  </div>
</body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a202c;">Reset your password</h2>
    <p>We received a request to reset the password for {{.Email}}.</p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #2b6cb0; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Reset Password</a>
    </p>
    <p style="color: #718096; font-size: 13px;">If you didn't request this, you can ignore this email. The link expires in {{.ExpiryHours}} hours.</p>
  </div>
</body>
</html>`))

var magicLinkTmpl = template.Must(template.New("magic").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a202c;">Your sign-in link</h2>
    <p>Click below to sign in to FleetWise as {{.Email}}.</p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #2b6cb0; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Sign In</a>
    </p>
    <p style="color: #718096; font-size: 13px;">If you didn't request this, you can ignore this email.</p>
  </div>
</body>
</html>`))

var roleLabels = map[string]string{
	"master_admin":   "Master Admin",
	"company_admin":  "Company Admin",
	"office_manager": "Office Manager",
	"technician":     "Technician",
}

type templateData struct {
	Link        string
	Email       string
	RoleLabel   string
	CompanyName string
	ExpiryHours int
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

// InviteEmail renders the invitation email. The link embeds the raw
// invite token; appURL is the public frontend origin.
func InviteEmail(appURL, token, role, companyName string, expiryHours int) (subject, html string, err error) {
	label, ok := roleLabels[role]
	if !ok {
		label = role
	}
	html, err = render(inviteTmpl, templateData{
		Link:        appURL + "/accept-invite?token=" + token,
		RoleLabel:   label,
		CompanyName: companyName,
		ExpiryHours: expiryHours,
	})
	return "You're invited to FleetWise", html, err
}

// ResetEmail renders the password-reset email.
func ResetEmail(appURL, token, email string, expiryHours int) (subject, html string, err error) {
	html, err = render(resetTmpl, templateData{
		Link:        appURL + "/reset-password?token=" + token,
		Email:       email,
		ExpiryHours: expiryHours,
	})
	return "Reset your FleetWise password", html, err
}

// MagicLinkEmail renders the one-click sign-in email.
func MagicLinkEmail(appURL, token, email string) (subject, html string, err error) {
	html, err = render(magicLinkTmpl, templateData{
		Link:  appURL + "/magic-link?token=" + token,
		Email: email,
	})
	return "Your FleetWise sign-in link", html, err
}
