package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

var contactTemplate = template.Must(template.New("contact").Parse(`<h2>New enquiry from {{.Name}}</h2>
<table>
<tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
{{- if .Email}}
<tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
{{- end}}
<tr><td><strong>Package</strong></td><td>{{.Package}}</td></tr>
<tr><td><strong>Received</strong></td><td>{{.Received}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

// ContactEmail builds the staff notification for a contact form
// submission. Replies go to the enquirer when they left an email address.
func ContactEmail(sub *model.ContactSubmission, to []string, loc *time.Location) (Message, error) {
	if loc == nil {
		loc = time.UTC
	}
	data := struct {
		Name, Phone, Email, Package, Message, Received string
	}{
		Name:     sub.Name,
		Phone:    sub.Phone,
		Package:  sub.Package,
		Message:  sub.Message,
		Received: sub.CreatedAt.In(loc).Format("Mon 2 Jan 2006 15:04"),
	}
	if sub.Email != nil {
		data.Email = *sub.Email
	}

	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render contact email: %w", err)
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New enquiry from %s (%s)", sub.Name, sub.Package),
		HTML:    buf.String(),
		ReplyTo: data.Email,
	}, nil
}
