// Package payment maps a chosen payment method to a display-only
// confirmation. The confirmations are mocked: a real gateway integration can
// implement Provider without touching checkout.
package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type Method string

const (
	MethodEasypaisa    Method = "easypaisa"
	MethodJazzcash     Method = "jazzcash"
	MethodBankTransfer Method = "bank_transfer"
)

var ErrUnsupportedMethod = errors.New("unsupported payment method")

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEasypaisa, MethodJazzcash, MethodBankTransfer:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

type BankDetails struct {
	AccountTitle  string `json:"accountTitle"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BranchCode    string `json:"branchCode"`
}

type Details struct {
	TransactionID string       `json:"transactionId"`
	Message       string       `json:"message"`
	AccountNumber string       `json:"accountNumber,omitempty"`
	BankDetails   *BankDetails `json:"bankDetails,omitempty"`
}

type Provider interface {
	Confirm(order domain.Order, method Method) (Details, error)
}

// MockProvider issues synthetic transaction ids with no gateway call.
type MockProvider struct {
	now func() time.Time
}

func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

func (p *MockProvider) Confirm(_ domain.Order, method Method) (Details, error) {
	ts := p.now().UnixMilli()

	// Method is validated at checkout, but this is the last stop before the
	// value reaches display, so reject unknown values here too.
	switch method {
	case MethodEasypaisa:
		return Details{
			TransactionID: fmt.Sprintf("EP%d", ts),
			Message:       "Please complete payment using Easypaisa mobile app",
			AccountNumber: "0300-1234567",
		}, nil
	case MethodJazzcash:
		return Details{
			TransactionID: fmt.Sprintf("JC%d", ts),
			Message:       "Please complete payment using JazzCash mobile app",
			AccountNumber: "0300-7654321",
		}, nil
	case MethodBankTransfer:
		return Details{
			TransactionID: fmt.Sprintf("BT%d", ts),
			Message:       "Please transfer the amount to the following bank account",
			BankDetails: &BankDetails{
				AccountTitle:  "Storefront Pvt Ltd",
				AccountNumber: "1234-5678-9012-3456",
				BankName:      "Allied Bank",
				BranchCode:    "001",
			},
		}, nil
	default:
		return Details{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}
