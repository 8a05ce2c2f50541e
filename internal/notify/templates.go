package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AppointmentMail carries what the appointment emails render.
// Start is already in the store's location.
type AppointmentMail struct {
	To              string
	UserName        string
	StoreName       string
	Start           time.Time
	DurationMinutes int
	Status          string
}

type Message struct {
	To      string
	Subject string
	HTML    string
}

const layoutHead = `<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; border-radius: 10px;">`

const detailsBlock = `
    <ul style="list-style: none; padding: 0;">
      <li style="margin: 10px 0; color: #555;">Date: {{.Date}}</li>
      <li style="margin: 10px 0; color: #555;">Time: {{.Time}}</li>
      <li style="margin: 10px 0; color: #555;">Duration: {{.Duration}} minutes</li>
    </ul>`

var requestedTmpl = template.Must(template.New("requested").Parse(layoutHead + `
  <div style="background-color: #007bff; padding: 20px; border-radius: 8px 8px 0 0; text-align: center;">
    <h2 style="color: white; margin: 0;">{{.Title}}</h2>
  </div>
  <div style="background-color: white; padding: 20px; border-radius: 0 0 8px 8px;">
    <p>Dear {{.UserName}},</p>
    <p>Your appointment request at <strong>{{.StoreName}}</strong> has been received.</p>
    <h3 style="color: #007bff;">Appointment Details:</h3>` + detailsBlock + `
    <p style="color: #666; font-size: 14px;">We will notify you once the store owner reviews your request.</p>
  </div>
</div>`))

var statusTmpl = template.Must(template.New("status").Parse(layoutHead + `
  <div style="background-color: {{.Color}}; padding: 20px; border-radius: 8px 8px 0 0; text-align: center;">
    <h2 style="color: white; margin: 0;">{{.Title}}</h2>
  </div>
  <div style="background-color: white; padding: 20px; border-radius: 0 0 8px 8px;">
    <p>Dear {{.UserName}},</p>
    <p>Your appointment at <strong>{{.StoreName}}</strong> has been <strong>{{.Status}}</strong>.</p>
    <h3 style="color: {{.Color}};">Appointment Details:</h3>` + detailsBlock + `
    {{if .Approved}}<p style="color: #28a745; font-weight: bold;">We look forward to seeing you!</p>
    {{else}}<p style="color: #666;">We apologize for any inconvenience. Feel free to book another appointment.</p>{{end}}
  </div>
</div>`))

type view struct {
	Title     string
	UserName  string
	StoreName string
	Status    string
	Date      string
	Time      string
	Duration  int
	Color     string
	Approved  bool
}

func newView(m AppointmentMail, title string) view {
	return view{
		Title:     title,
		UserName:  m.UserName,
		StoreName: m.StoreName,
		Status:    m.Status,
		Date:      m.Start.Format("Monday, January 2, 2006"),
		Time:      m.Start.Format("15:04"),
		Duration:  m.DurationMinutes,
	}
}

// RenderRequested builds the confirmation sent after a booking request.
func RenderRequested(m AppointmentMail) (Message, error) {
	const subject = "Appointment Request Confirmation"
	return render(requestedTmpl, m.To, subject, newView(m, subject))
}

// RenderStatusChanged builds the "Appointment Approved/Rejected" email.
func RenderStatusChanged(m AppointmentMail) (Message, error) {
	subject := "Appointment " + cases.Title(language.English).String(m.Status)

	v := newView(m, subject)
	v.Approved = m.Status == "approved"
	v.Color = "#dc3545"
	if v.Approved {
		v.Color = "#28a745"
	}
	return render(statusTmpl, m.To, subject, v)
}

func render(t *template.Template, to, subject string, v view) (Message, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}
