package relay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yana3030-web/stroymaster-website/internal/model"
)

// TemplateParams assembles the variables for the relay's pre-configured
// order template. Field names are part of the template contract.
func TemplateParams(payload *model.OrderPayload, siteName string) map[string]string {
	message := payload.Message
	if strings.TrimSpace(message) == "" {
		message = "Нет комментариев"
	}

	return map[string]string{
		"customer_name":    payload.Name,
		"customer_phone":   payload.Phone,
		"customer_email":   payload.Email,
		"customer_address": payload.Address,
		"customer_message": message,

		"order_date":  payload.OrderDate.Format("02.01.2006, 15:04"),
		"items_count": strconv.Itoa(len(payload.Items)),
		"total_price": model.FormatPrice(payload.TotalPrice),

		"order_items_html": itemsTable(payload.Items),
		"order_items_text": itemsList(payload.Items),

		"site_name": siteName,
		"order_id":  OrderID(payload),
	}
}

// OrderID derives the order identifier sent with the template: a millisecond
// timestamp, which is unique enough for a shop taking a handful of orders a
// day.
func OrderID(payload *model.OrderPayload) string {
	return fmt.Sprintf("ORD-%d", payload.OrderDate.UnixMilli())
}

func itemTotal(item model.OrderItem) float64 {
	if item.Price <= 0 {
		return 0
	}
	return item.Price * float64(item.Quantity)
}

// itemsTable renders the order as an HTML table for the email body.
func itemsTable(items []model.OrderItem) string {
	var rows strings.Builder
	for _, item := range items {
		fmt.Fprintf(&rows, `
      <tr>
        <td style="padding: 8px; border: 1px solid #ddd;">%s</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">%s</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">%s</td>
      </tr>`,
			item.Name, item.Quantity, model.FormatPrice(item.Price), model.FormatPrice(itemTotal(item)))
	}

	return `
    <table style="width: 100%; border-collapse: collapse; margin: 10px 0;">
      <thead>
        <tr style="background-color: #f5f5f5;">
          <th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Товар</th>
          <th style="padding: 8px; border: 1px solid #ddd; text-align: center;">Количество</th>
          <th style="padding: 8px; border: 1px solid #ddd; text-align: right;">Цена за ед.</th>
          <th style="padding: 8px; border: 1px solid #ddd; text-align: right;">Сумма</th>
        </tr>
      </thead>
      <tbody>` + rows.String() + `
      </tbody>
    </table>`
}

// itemsList renders the order as a plain-text bullet list, the fallback
// body for clients that strip HTML.
func itemsList(items []model.OrderItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("• %s - %d шт. × %s = %s",
			item.Name, item.Quantity, model.FormatPrice(item.Price), model.FormatPrice(itemTotal(item)))
	}
	return strings.Join(lines, "\n")
}
