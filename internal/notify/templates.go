package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingEmail carries everything the templates need, denormalized so the
// dispatcher never touches storage.
type BookingEmail struct {
	To            string
	ClientName    string
	TenantName    string
	TenantAddress string
	TenantPhone   string
	Subdomain     string
	MasterName    string
	ServiceName   string
	Date          time.Time
	Price         float64
	BookingID     uuid.UUID
	ConfirmToken  string
	CancelToken   string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<h2>Your booking at {{.TenantName}}</h2>
<p>Hi {{.ClientName}},</p>
<p>
  {{.ServiceName}} with {{.MasterName}}<br>
  {{.When}} &mdash; ${{printf "%.2f" .Price}}
</p>
{{if .Address}}<p>{{.Address}}{{if .Phone}} &middot; {{.Phone}}{{end}}</p>{{end}}
<p>
  <a href="{{.ConfirmLink}}">Confirm booking</a><br>
  <a href="{{.CancelLink}}">Cancel booking</a>
</p>
`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(`
<h2>Booking cancelled</h2>
<p>Hi {{.ClientName}},</p>
<p>
  Your {{.ServiceName}} appointment at {{.TenantName}} on {{.When}}
  has been cancelled.
</p>
`))

type templateData struct {
	ClientName  string
	TenantName  string
	MasterName  string
	ServiceName string
	When        string
	Price       float64
	Address     string
	Phone       string
	ConfirmLink string
	CancelLink  string
}

// ConfirmLink and CancelLink land on the tenant's public site, which calls
// the API with the embedded token.
func confirmLink(domain string, e BookingEmail) string {
	return fmt.Sprintf(
		"https://%s.%s/booking/confirm?booking_id=%s&token=%s",
		e.Subdomain, domain, e.BookingID, e.ConfirmToken,
	)
}

func cancelLink(domain string, e BookingEmail) string {
	return fmt.Sprintf(
		"https://%s.%s/booking/cancel?booking_id=%s&token=%s",
		e.Subdomain, domain, e.BookingID, e.CancelToken,
	)
}

func renderConfirmation(domain string, e BookingEmail) (EmailMessage, error) {
	data := templateData{
		ClientName:  e.ClientName,
		TenantName:  e.TenantName,
		MasterName:  e.MasterName,
		ServiceName: e.ServiceName,
		When:        e.Date.Format("Monday, 2 January 2006 at 15:04"),
		Price:       e.Price,
		Address:     e.TenantAddress,
		Phone:       e.TenantPhone,
		ConfirmLink: confirmLink(domain, e),
		CancelLink:  cancelLink(domain, e),
	}

	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, data); err != nil {
		return EmailMessage{}, err
	}

	return EmailMessage{
		To:      e.To,
		ToName:  e.ClientName,
		Subject: fmt.Sprintf("Confirm your booking at %s", e.TenantName),
		Body:    fmt.Sprintf("Confirm: %s\nCancel: %s", data.ConfirmLink, data.CancelLink),
		HTML:    sb.String(),
	}, nil
}

func renderCancellation(domain string, e BookingEmail) (EmailMessage, error) {
	data := templateData{
		ClientName:  e.ClientName,
		TenantName:  e.TenantName,
		ServiceName: e.ServiceName,
		When:        e.Date.Format("Monday, 2 January 2006 at 15:04"),
	}

	var sb strings.Builder
	if err := cancellationTmpl.Execute(&sb, data); err != nil {
		return EmailMessage{}, err
	}

	return EmailMessage{
		To:      e.To,
		ToName:  e.ClientName,
		Subject: fmt.Sprintf("Your booking at %s was cancelled", e.TenantName),
		Body:    fmt.Sprintf("Your %s appointment on %s was cancelled.", e.ServiceName, data.When),
		HTML:    sb.String(),
	}, nil
}
