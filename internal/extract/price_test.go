package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"payment amount label", "Payment Amount: ₹ 18,906.25\nOrder 123", "18906.25"},
		{"amount paid label", "Amount Paid: ₹4,500", "4500"},
		{"labeled total beats bare amounts", "₹ 500\nPayment Amount: ₹ 2,000", "2000"},
		{"bare rupee symbol", "Ticket ₹1,250.50", "1250.5"},
		{"largest candidate wins", "₹ 450 convenience\n₹ 9,000 tickets", "9000"},
		{"rs prefix", "Total Rs. 3,500", "3500"},
		{"inr prefix", "INR 12000 payable", "12000"},
		{"total line with decimals", "Grand Total                 4,725.00", "4725"},
		{"amount line with decimals", "Amount due 1,180.00", "1180"},
		{"no price anywhere", "no currency here", "0"},
		{"empty text", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.text)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", got, tt.want)
		})
	}
}

func TestPriceFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"embedded amount", "bms_csk_31.03_18906_tix.pdf", "18906"},
		{"amount before extension", "paytm_4500.pdf", "4500"},
		{"invoice number stripped first", "Invoice_2400567890_750_x.pdf", "750"},
		{"inv series stripped", "INV2405_900_receipt.pdf", "900"},
		{"short number ignored", "order_45_x.pdf", "0"},
		{"below price window rejected", "order_0095_x.pdf", "0"},
		{"no digits", "receipt.pdf", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceFromFilename(tt.filename)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", got, tt.want)
		})
	}
}
