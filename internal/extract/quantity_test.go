package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		amount   string
		want     int
		found    bool
	}{
		{"fee document is one charge", "Convenience Fee Rs 450", "bms_fee.pdf", "450", 1, true},
		{"n tickets phrase", "Booked 5 tickets for the match", "x.pdf", "0", 5, true},
		{"single ticket", "1 ticket confirmed", "x.pdf", "0", 1, true},
		{"tickets x is a unit price line", "5 tickets x ₹1000 each\nQty: 3", "x.pdf", "0", 3, true},
		{"quantity label", "Quantity: 4", "x.pdf", "0", 4, true},
		{"qty label", "Qty 2", "x.pdf", "0", 2, true},
		{"no of tickets", "No. of tickets: 6", "x.pdf", "0", 6, true},
		{"nos unit", "Cricket Match Ticket    8 Nos", "x.pdf", "0", 8, true},
		{"first direct unit hit wins over line summing", "Ticket Block A\n  4 OTH\nTicket Block B\n  3 OTH", "x.pdf", "0", 4, true},
		{"seat range inclusive", "Seats T-32 to T-41", "x.pdf", "0", 10, true},
		{"seat cluster", "Seats: EEE-5 EEE-6 EEE-7 EEE-8", "x.pdf", "0", 4, true},
		{"tickets colon", "2 Tickets: Block H", "x.pdf", "0", 2, true},
		{"table layout quantity", "Description  Qty\nMatch ticket\nQty\n12", "x.pdf", "0", 12, true},
		{"nothing matches", "No usable numbers here", "x.pdf", "0", 0, false},
		{"empty text", "", "scan.pdf", "0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got, ok := Quantity(tt.text, tt.filename, amount)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketLineSum(t *testing.T) {
	// Lowercase units dodge the direct patterns; the line scanner is
	// case-insensitive and sums every ticket line.
	n, ok := ticketLineSum("Ticket Block A\n  4 oth\nTicket Block B\n  3 oth")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ticketLineSum("no line items")
	assert.False(t, ok)
}

func TestBulkEstimate(t *testing.T) {
	text := "IPL 2024 Final hospitality package"

	tests := []struct {
		name   string
		text   string
		amount string
		want   int
		found  bool
	}{
		{"plausible bulk amount", text, "2000000", 50, true},
		{"amount too small", text, "90000", 0, false},
		{"implied unit price too low", text, "300000", 0, false},
		{"implied unit price too high", text, "6000000", 0, false},
		{"not a finals document", "regular season receipt", "2000000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bulkEstimate(tt.text, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
