package types

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanDuration represents a premium plan billing period.
type PlanDuration string

const (
	PlanDurationWeekly  PlanDuration = "Weekly"
	PlanDurationMonthly PlanDuration = "Monthly"
	PlanDurationYearly  PlanDuration = "Yearly"
)

// PlanStatus represents a user's entitlement state.
type PlanStatus string

const (
	PlanStatusActive         PlanStatus = "Active"
	PlanStatusExpired        PlanStatus = "Expired"
	PlanStatusNoSubscription PlanStatus = "No Subscription"
)

// PaymentMethodType represents supported payment methods.
type PaymentMethodType string

const (
	PaymentMethodCreditCard PaymentMethodType = "Credit Card"
	PaymentMethodUPI        PaymentMethodType = "UPI"
)

// ContentType distinguishes standalone movies from episodic series.
type ContentType string

const (
	ContentTypeMovie     ContentType = "movie"
	ContentTypeWebseries ContentType = "webseries"
)

// Gender values accepted on user profiles.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// Money wraps decimal.Decimal for money values
type Money decimal.Decimal

// NewMoney creates Money from float64
func NewMoney(value float64) Money {
	return Money(decimal.NewFromFloat(value))
}

// NewMoneyFromString creates Money from string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money(d), nil
}

// Float64 returns the float64 representation
func (m Money) Float64() float64 {
	return decimal.Decimal(m).InexactFloat64()
}

// String returns string representation
func (m Money) String() string {
	return decimal.Decimal(m).String()
}

// Add adds two Money values
func (m Money) Add(other Money) Money {
	return Money(decimal.Decimal(m).Add(decimal.Decimal(other)))
}

// Sub subtracts other from m
func (m Money) Sub(other Money) Money {
	return Money(decimal.Decimal(m).Sub(decimal.Decimal(other)))
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return decimal.Decimal(m).GreaterThan(decimal.Decimal(other))
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return decimal.Decimal(m).LessThan(decimal.Decimal(other))
}

// IsNegative returns true if value is below zero
func (m Money) IsNegative() bool {
	return decimal.Decimal(m).IsNegative()
}

// IsZero returns true if value is zero
func (m Money) IsZero() bool {
	return decimal.Decimal(m).IsZero()
}

// Value implements driver.Valuer for database serialization
func (m Money) Value() (driver.Value, error) {
	return decimal.Decimal(m).Value()
}

// Scan implements sql.Scanner for database deserialization
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(m).MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

// JSON represents a generic JSON blob stored in the database.
type JSON []byte

// Value implements driver.Valuer for JSON serialization.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner for JSON deserialization.
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = append((*j)[:0], v...)
	default:
		return fmt.Errorf("types.JSON: unsupported scan type %T", value)
	}
	return nil
}

// MarshalJSON passes through the stored JSON.
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON stores the raw JSON bytes.
func (j *JSON) UnmarshalJSON(data []byte) error {
	if data == nil {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], data...)
	return nil
}
