package service

import (
	"fmt"
	"strings"

	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

const (
	shopName        = "CHAI GALI"
	phoneNotGiven   = "Not provided"
	orderTitle      = "Order Confirmation"
	contactTitle    = "Contact Form Submission"
	defaultETA      = "15-20 minutes"
	orderSignoff    = "Thank you for ordering with " + shopName + "!"
	contactSignoff  = "Thank you for reaching out to " + shopName + "!"
	contactFollowUp = "We will get back to you soon."
)

// NewQuote prices a selection and pairs it with its display form.
func NewQuote(calc *pricing.Calculator, sel pricing.Selection) *models.Quote {
	b := calc.Recalculate(sel)
	return &models.Quote{Breakdown: b, Summary: b.Display()}
}

// FormatOrderConfirmation renders the text shown once an order is accepted.
func FormatOrderConfirmation(order *models.Order, eta string) string {
	if eta == "" {
		eta = defaultETA
	}

	var sb strings.Builder
	writeTitle(&sb, orderTitle, len(orderTitle))
	fmt.Fprintf(&sb, "Name: %s\n", order.FullName)
	fmt.Fprintf(&sb, "Email: %s\n", order.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", order.Phone)
	fmt.Fprintf(&sb, "Tea: %s\n", order.TeaLabel)
	fmt.Fprintf(&sb, "Quantity: %d\n", order.Quantity)
	fmt.Fprintf(&sb, "Temperature: %s\n", order.Temperature)
	fmt.Fprintf(&sb, "Total Amount: %s\n\n", pricing.FormatRupees(order.Total))
	fmt.Fprintf(&sb, "Your order will be delivered in %s.\n", eta)
	sb.WriteString(orderSignoff)
	return sb.String()
}

// FormatContactConfirmation renders the text shown once a contact message
// is accepted.
func FormatContactConfirmation(msg *models.ContactMessage) string {
	phone := msg.Phone
	if strings.TrimSpace(phone) == "" {
		phone = phoneNotGiven
	}

	var sb strings.Builder
	// the underline is one short of the title
	writeTitle(&sb, contactTitle, len(contactTitle)-1)
	fmt.Fprintf(&sb, "Name: %s\n", msg.Name)
	fmt.Fprintf(&sb, "Email: %s\n", msg.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", phone)
	fmt.Fprintf(&sb, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&sb, "Message: %s\n\n", msg.Message)
	sb.WriteString(contactSignoff + "\n")
	sb.WriteString(contactFollowUp)
	return sb.String()
}

func writeTitle(sb *strings.Builder, title string, underline int) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", underline) + "\n")
}
