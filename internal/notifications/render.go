package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/amaclone/storefront/internal/localization"
	"github.com/amaclone/storefront/pkg/db/models"
)

const confirmationKey = "email.orderConfirmation."

var confirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}" dir="{{.Dir}}">
<body>
<h1>{{.Greeting}}</h1>
<ul>
{{- range .Lines}}
<li>{{.}}</li>
{{- end}}
</ul>
<p><strong>{{.Total}}</strong></p>
<h2>{{.ShippingTo}}</h2>
<p>{{.Shipping.FullName}}<br>{{.Shipping.Address}}<br>{{.Shipping.City}}, {{.Shipping.State}} {{.Shipping.ZipCode}}<br>{{.Shipping.Country}}</p>
</body>
</html>
`))

type confirmationView struct {
	Locale     string
	Dir        string
	Greeting   string
	Lines      []string
	Total      string
	ShippingTo string
	Shipping   models.ShippingDetails
}

// RenderOrderConfirmation builds the confirmation email for order in locale.
func RenderOrderConfirmation(tables localization.Tables, locale string, order *models.Order, user *models.User) (Message, error) {
	if order == nil {
		return Message{}, fmt.Errorf("order required")
	}
	if !tables.Supports(locale) {
		locale = localization.DefaultLocale
	}
	t := func(key string, params map[string]any) string {
		return tables.Translate(locale, confirmationKey+key, params)
	}

	name := order.Shipping.FullName
	to := order.Shipping.Email
	if user != nil {
		if user.Name != "" {
			name = user.Name
		}
		if to == "" {
			to = user.Email
		}
	}

	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, t("itemLine", map[string]any{
			"name":      item.Name,
			"quantity":  item.Quantity,
			"lineTotal": lineTotal.StringFixed(2),
		}))
	}

	view := confirmationView{
		Locale:     locale,
		Dir:        localization.Direction(locale),
		Greeting:   t("greeting", map[string]any{"name": name}),
		Lines:      lines,
		Total:      t("total", map[string]any{"total": order.Total.StringFixed(2)}),
		ShippingTo: t("shippingTo", nil),
		Shipping:   order.Shipping,
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return Message{}, fmt.Errorf("render order confirmation: %w", err)
	}
	return Message{
		To:      []string{to},
		Subject: t("subject", map[string]any{"orderId": order.ID.String()}),
		HTML:    buf.String(),
	}, nil
}
