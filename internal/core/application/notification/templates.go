package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

const currencySymbol = "₹"

var funcs = map[string]any{
	"money": func(m kernel.Money) string { return currencySymbol + m.String() },
}

var textTemplates = texttemplate.Must(texttemplate.New("text").Funcs(funcs).Parse(`
{{- define "order_created/customer" -}}
Hi {{.View.Customer.Name}},

We've received your order {{.View.Number}} and will begin processing it soon.

{{range .View.Items}}- {{.ProductName}} x{{.Quantity}} @ {{money .Price}}
{{end}}
Subtotal: {{money .View.Subtotal}}
Tax: {{money .View.Tax}}
Shipping: {{money .View.Shipping}}
{{- if not .View.Discount.IsZero}}
Discount: -{{money .View.Discount}}
{{- end}}
Total: {{money .View.Total}}

Shipping to:
{{.View.ShippingAddress.Name}}
{{.View.ShippingAddress.Street}}
{{.View.ShippingAddress.City}}, {{.View.ShippingAddress.State}} {{.View.ShippingAddress.PostalCode}}

We'll send you updates as your order progresses.
{{- end}}

{{- define "order_created/admin" -}}
New order received!

Order #: {{.View.Number}}
Customer: {{.View.Customer.Name}}
Phone: {{.Phone}}
Total: {{money .View.Total}}

Items:
{{range .View.Items}}- {{.ProductName}} (Qty: {{.Quantity}})
{{end}}
Address: {{.View.ShippingAddress.Street}}, {{.View.ShippingAddress.City}}

Please check the admin panel for full details.
{{- end}}

{{- define "status_changed/customer" -}}
Hi {{.View.Customer.Name}},

Order {{.View.Number}} status: {{.StatusLabel}}
{{.Description}}
{{- if .Note}}
Note: {{.Note}}
{{- end}}
{{- if .View.TrackingNumber}}
Tracking number: {{.View.TrackingNumber}}
{{- end}}
{{- end}}

{{- define "status_changed/admin" -}}
Order {{.View.Number}} is now {{.StatusLabel}}.
{{- if .Note}} Note: {{.Note}}{{end}}
{{- end}}
`))

var htmlTemplates = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(`
{{- define "order_created" -}}
<!DOCTYPE html>
<html><body>
<h1>Order Confirmation</h1>
<h2>Order #{{.View.Number}}</h2>
<p>Hi {{.View.Customer.Name}},</p>
<p>We've received your order and will begin processing it soon.</p>
<table>
{{range .View.Items}}<tr><td><strong>{{.ProductName}}</strong></td><td>Quantity: {{.Quantity}}</td><td>Price: {{money .Price}}</td></tr>
{{end}}</table>
<p><strong>Total: {{money .View.Total}}</strong></p>
<h3>Shipping Address</h3>
<p>{{.View.ShippingAddress.Name}}<br>{{.View.ShippingAddress.Street}}<br>{{.View.ShippingAddress.City}}, {{.View.ShippingAddress.State}} {{.View.ShippingAddress.PostalCode}}</p>
<p>We'll send you updates as your order progresses.</p>
</body></html>
{{- end}}

{{- define "status_changed" -}}
<!DOCTYPE html>
<html><body>
<h1>Order Update</h1>
<p>Order #{{.View.Number}}</p>
<p>Hi {{.View.Customer.Name}},</p>
<h3>Status: {{.StatusLabel}}</h3>
<p>{{.Description}}</p>
{{- if .Note}}
<p><strong>Note:</strong> {{.Note}}</p>
{{- end}}
</body></html>
{{- end}}
`))

type templateData struct {
	View        ports.OrderView
	StatusLabel string
	Description string
	Note        string
	Phone       string
}

// render builds the message one audience receives. Broadcast receives the
// admin wording.
func render(kind ports.NotificationKind, audience Audience, view ports.OrderView, status order.Status, note string) (Message, error) {
	description, ok := status.Description()
	if !ok {
		description = order.GenericStatusDescription
	}

	phone := view.Customer.Phone
	if phone == "" {
		phone = view.ShippingAddress.Phone
	}

	data := templateData{
		View:        view,
		StatusLabel: status.Label(),
		Description: description,
		Note:        strings.TrimSpace(note),
		Phone:       phone,
	}

	msg := Message{
		Kind:        kind,
		OrderID:     view.OrderID,
		OrderNumber: view.Number.String(),
		Status:      status,
		Note:        data.Note,
		Total:       view.Total,
	}

	switch kind {
	case ports.OrderCreated:
		msg.Subject = "Order Confirmation - " + msg.OrderNumber
	case ports.StatusChanged:
		msg.Subject = "Order Update - " + msg.OrderNumber
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	textAudience := AudienceAdmin
	if audience == AudienceCustomer {
		textAudience = AudienceCustomer
	}

	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, string(kind)+"/"+string(textAudience), data); err != nil {
		return Message{}, err
	}
	msg.Text = buf.String()

	if audience == AudienceCustomer {
		buf.Reset()
		if err := htmlTemplates.ExecuteTemplate(&buf, string(kind), data); err != nil {
			return Message{}, err
		}
		msg.HTML = buf.String()
	}

	return msg, nil
}
