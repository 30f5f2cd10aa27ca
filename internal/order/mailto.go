package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Yana3030-web/stroymaster-website/internal/model"
)

// BuildMailto constructs the mail-client handoff URI: a mailto link with a
// pre-filled recipient, subject and plain-text order summary. Mail clients
// do not decode "+" as a space, so the query is percent-encoded throughout.
func BuildMailto(recipient, siteName string, payload *model.OrderPayload) string {
	subject := fmt.Sprintf("Новый заказ от %s - %s", payload.Name, siteName)
	body := mailtoBody(siteName, payload)

	return "mailto:" + recipient +
		"?subject=" + encodeMailtoComponent(subject) +
		"&body=" + encodeMailtoComponent(body)
}

func encodeMailtoComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func mailtoBody(siteName string, payload *model.OrderPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Новый заказ с сайта %s\n\n", siteName)

	b.WriteString("ДАННЫЕ КЛИЕНТА:\n")
	fmt.Fprintf(&b, "Имя: %s\n", payload.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", payload.Phone)
	fmt.Fprintf(&b, "Email: %s\n", payload.Email)
	fmt.Fprintf(&b, "Адрес доставки: %s\n", payload.Address)
	if strings.TrimSpace(payload.Message) != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", payload.Message)
	}

	b.WriteString("\nЗАКАЗАННЫЕ ТОВАРЫ:\n")
	for i, item := range payload.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		total := 0.0
		if item.Price > 0 {
			total = item.Price * float64(item.Quantity)
		}
		fmt.Fprintf(&b, "• %s\n", item.Name)
		fmt.Fprintf(&b, "  Количество: %d шт.\n", item.Quantity)
		fmt.Fprintf(&b, "  Цена: %s\n", model.FormatPrice(item.Price))
		fmt.Fprintf(&b, "  Сумма: %s\n", model.FormatPrice(total))
	}

	fmt.Fprintf(&b, "\nОБЩАЯ СУММА: %s\n", model.FormatPrice(payload.TotalPrice))
	fmt.Fprintf(&b, "\nДата заказа: %s\n", payload.OrderDate.Format("02.01.2006, 15:04"))

	return b.String()
}
