package payment

import (
	"testing"

	"github.com/nexstream/ott-server-go/pkg/types"
)

func strPtr(s string) *string { return &s }

func cardInput() CreateInput {
	return CreateInput{
		CardNumber:     strPtr("4111111111111111"),
		CardHolderName: strPtr("Asha Rao"),
		ExpiryDate:     strPtr("12/27"),
		CVV:            strPtr("123"),
	}
}

func TestValidateMethodFields(t *testing.T) {
	tests := []struct {
		name    string
		method  types.PaymentMethodType
		input   CreateInput
		wantErr error
	}{
		{
			name:   "credit card with full card details",
			method: types.PaymentMethodCreditCard,
			input:  cardInput(),
		},
		{
			name:    "credit card missing CVV",
			method:  types.PaymentMethodCreditCard,
			input:   CreateInput{CardNumber: strPtr("4111111111111111"), CardHolderName: strPtr("Asha Rao"), ExpiryDate: strPtr("12/27")},
			wantErr: ErrCardFieldsRequired,
		},
		{
			name:    "credit card with blank card number",
			method:  types.PaymentMethodCreditCard,
			input:   CreateInput{CardNumber: strPtr("   "), CardHolderName: strPtr("Asha Rao"), ExpiryDate: strPtr("12/27"), CVV: strPtr("123")},
			wantErr: ErrCardFieldsRequired,
		},
		{
			name:   "credit card with stray UPI ID",
			method: types.PaymentMethodCreditCard,
			input: func() CreateInput {
				in := cardInput()
				in.UPIID = strPtr("asha@upi")
				return in
			}(),
			wantErr: ErrUPINotAllowed,
		},
		{
			name:   "UPI with UPI ID",
			method: types.PaymentMethodUPI,
			input:  CreateInput{UPIID: strPtr("asha@upi")},
		},
		{
			name:    "UPI with malformed handle",
			method:  types.PaymentMethodUPI,
			input:   CreateInput{UPIID: strPtr("not a handle")},
			wantErr: ErrInvalidUPI,
		},
		{
			name:    "UPI missing UPI ID",
			method:  types.PaymentMethodUPI,
			input:   CreateInput{},
			wantErr: ErrUPIRequired,
		},
		{
			name:    "UPI with stray card fields",
			method:  types.PaymentMethodUPI,
			input:   CreateInput{UPIID: strPtr("asha@upi"), CardNumber: strPtr("4111111111111111")},
			wantErr: ErrCardFieldsNotAllowed,
		},
		{
			name:    "unknown method",
			method:  types.PaymentMethodType("Crypto"),
			input:   CreateInput{},
			wantErr: ErrInvalidMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMethodFields(tt.method, tt.input)
			if err != tt.wantErr {
				t.Errorf("validateMethodFields() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalComputation(t *testing.T) {
	price := types.NewMoney(499)
	discount := types.NewMoney(0)
	platformFee := types.NewMoney(1)

	total := price.Sub(discount).Add(platformFee)
	want := types.NewMoney(500)

	if !total.Sub(want).IsZero() {
		t.Errorf("total = %s, want %s", total, want)
	}
}

func TestTrimPtr(t *testing.T) {
	if got := trimPtr(nil); got != nil {
		t.Errorf("trimPtr(nil) = %v, want nil", got)
	}
	if got := trimPtr(strPtr("  ")); got != nil {
		t.Errorf("trimPtr(blank) = %v, want nil", got)
	}
	if got := trimPtr(strPtr(" asha@upi ")); got == nil || *got != "asha@upi" {
		t.Errorf("trimPtr() = %v, want asha@upi", got)
	}
}
