package subscription

import (
	"testing"
	"time"

	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestComputeEndDate(t *testing.T) {
	start := date(2024, time.January, 15)

	tests := []struct {
		name     string
		duration types.PlanDuration
		want     *time.Time
	}{
		{
			name:     "weekly adds seven days",
			duration: types.PlanDurationWeekly,
			want:     timePtr(date(2024, time.January, 22)),
		},
		{
			name:     "monthly adds one calendar month",
			duration: types.PlanDurationMonthly,
			want:     timePtr(date(2024, time.February, 15)),
		},
		{
			name:     "yearly adds one calendar year",
			duration: types.PlanDurationYearly,
			want:     timePtr(date(2025, time.January, 15)),
		},
		{
			name:     "unknown duration yields nil",
			duration: types.PlanDuration("Quarterly"),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEndDate(start, tt.duration)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ComputeEndDate() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ComputeEndDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeEndDateMonthEndNormalization(t *testing.T) {
	// Jan 31 + one month normalizes past February, per time.AddDate.
	start := date(2024, time.January, 31)
	got := ComputeEndDate(start, types.PlanDurationMonthly)
	if got == nil {
		t.Fatal("ComputeEndDate() = nil, want non-nil")
	}
	want := date(2024, time.March, 2)
	if !got.Equal(want) {
		t.Errorf("ComputeEndDate() = %v, want %v", got, want)
	}
}

func TestDeriveStatus(t *testing.T) {
	now := date(2024, time.June, 1)

	tests := []struct {
		name    string
		endDate *time.Time
		want    types.PlanStatus
	}{
		{
			name:    "nil end date means no subscription",
			endDate: nil,
			want:    types.PlanStatusNoSubscription,
		},
		{
			name:    "future end date is active",
			endDate: timePtr(date(2024, time.June, 2)),
			want:    types.PlanStatusActive,
		},
		{
			name:    "end date equal to now is still active",
			endDate: timePtr(now),
			want:    types.PlanStatusActive,
		},
		{
			name:    "past end date is expired",
			endDate: timePtr(date(2024, time.May, 31)),
			want:    types.PlanStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(now, tt.endDate); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasActiveEntitlement(t *testing.T) {
	now := date(2024, time.June, 1)
	future := date(2024, time.July, 1)
	past := date(2024, time.May, 1)

	tests := []struct {
		name string
		usr  *user.User
		want bool
	}{
		{
			name: "nil user",
			usr:  nil,
			want: false,
		},
		{
			name: "not subscribed",
			usr:  &user.User{IsSubscribed: false, EndDate: &future},
			want: false,
		},
		{
			name: "subscribed without end date",
			usr:  &user.User{IsSubscribed: true},
			want: false,
		},
		{
			name: "subscribed with future end date",
			usr:  &user.User{IsSubscribed: true, EndDate: &future},
			want: true,
		},
		{
			name: "subscribed with end date at the exact access instant",
			usr:  &user.User{IsSubscribed: true, EndDate: &now},
			want: true,
		},
		{
			name: "subscribed with lapsed end date",
			usr:  &user.User{IsSubscribed: true, EndDate: &past},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasActiveEntitlement(tt.usr, now); got != tt.want {
				t.Errorf("HasActiveEntitlement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
