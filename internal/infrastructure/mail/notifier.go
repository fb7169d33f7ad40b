package mail

import (
	"context"
	"fmt"
	"strings"

	"gamerverse/internal/domain/entity"
)

const orderTimeLayout = "2 Jan 2006 15:04 MST"

// Notifier renders storefront events into mails.
type Notifier struct {
	sender       Sender
	supportEmail string
}

func NewNotifier(sender Sender, supportEmail string) *Notifier {
	return &Notifier{
		sender:       sender,
		supportEmail: supportEmail,
	}
}

func (n *Notifier) OrderPlaced(ctx context.Context, order *entity.Order) error {
	if order.UserEmail == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order #%s, placed %s.\n\n", order.ID, order.CreatedTime().UTC().Format(orderTimeLayout))
	writeItems(&b, order)
	b.WriteString("\nScan the payment QR code on the checkout page to pay. ")
	b.WriteString("We will confirm your order once the payment has been verified.\n")

	return n.sender.Send(ctx, order.UserEmail, "GamerVerse order received", b.String())
}

func (n *Notifier) OrderCompleted(ctx context.Context, order *entity.Order) error {
	if order.UserEmail == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your payment for order #%s has been verified.\n\n", order.ID)
	writeItems(&b, order)
	b.WriteString("\nYour games are now available in your library. Happy gaming!\n")

	return n.sender.Send(ctx, order.UserEmail, "GamerVerse order completed", b.String())
}

func (n *Notifier) ContactReceived(ctx context.Context, msg *entity.ContactMessage) error {
	if n.supportEmail == "" {
		return nil
	}

	body := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s\n", msg.Name, msg.Email, msg.Subject, msg.Message)
	return n.sender.Send(ctx, n.supportEmail, "[Contact] "+msg.Subject, body)
}

func writeItems(b *strings.Builder, order *entity.Order) {
	for _, item := range order.Items {
		fmt.Fprintf(b, "  %d x %s  $%.2f\n", item.Quantity, item.Title, item.Price)
	}
	fmt.Fprintf(b, "Total: $%.2f\n", order.TotalAmount)
}
