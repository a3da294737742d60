package order

import (
	"fmt"
	"strings"
	"time"
)

// FormatNotification renders the staff-facing order summary sent to the
// admin chat. Telegram Markdown.
func FormatNotification(o *Order, now time.Time) string {
	var b strings.Builder

	id := o.ID.String()
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	fmt.Fprintf(&b, "🛍️ *НОВЫЙ ЗАКАЗ #%s*\n\n", id)

	fmt.Fprintf(&b, "👤 *Клиент:*\n")
	fmt.Fprintf(&b, "• Имя: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "• Телефон: %s\n", o.CustomerPhone)
	if o.CustomerEmail != "" {
		fmt.Fprintf(&b, "• Email: %s\n", o.CustomerEmail)
	}

	fmt.Fprintf(&b, "\n📦 *Товары:*\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s (%s) x%d = %.0f руб.\n",
			item.ProductName, item.Size, item.Quantity, item.Total)
	}

	fmt.Fprintf(&b, "\n💰 *Итого: %.0f руб.*\n", o.TotalAmount)

	fmt.Fprintf(&b, "\n🚚 *Доставка:*\n")
	fmt.Fprintf(&b, "• Способ: %s\n", o.DeliveryMethod.DisplayName())
	fmt.Fprintf(&b, "• Адрес: %s\n", o.DeliveryAddress)

	fmt.Fprintf(&b, "\n💳 *Оплата:* Банковский перевод\n")
	fmt.Fprintf(&b, "\n⏰ %s", now.Format("02.01.2006 15:04"))

	return b.String()
}
