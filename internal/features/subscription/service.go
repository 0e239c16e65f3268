package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/plan"
	"github.com/nexstream/ott-server-go/internal/features/user"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// ComputeEndDate returns the entitlement window end for a plan duration
// starting at start. Weekly adds seven days; Monthly and Yearly add one
// calendar month/year (so Jan 31 + Monthly lands on Mar 2/3 the way
// time.AddDate normalizes). Unknown durations yield nil.
func ComputeEndDate(start time.Time, duration types.PlanDuration) *time.Time {
	var end time.Time
	switch duration {
	case types.PlanDurationWeekly:
		end = start.AddDate(0, 0, 7)
	case types.PlanDurationMonthly:
		end = start.AddDate(0, 1, 0)
	case types.PlanDurationYearly:
		end = start.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &end
}

// DeriveStatus computes the entitlement status from the end date alone.
// The cached plan_status column is never an input here.
func DeriveStatus(now time.Time, endDate *time.Time) types.PlanStatus {
	if endDate == nil {
		return types.PlanStatusNoSubscription
	}
	if !now.After(*endDate) {
		return types.PlanStatusActive
	}
	return types.PlanStatusExpired
}

// HasActiveEntitlement recomputes entitlement at access time.
func HasActiveEntitlement(usr *user.User, now time.Time) bool {
	if usr == nil || !usr.IsSubscribed || usr.EndDate == nil {
		return false
	}
	return !now.After(*usr.EndDate)
}

// Subscribe assigns a plan to a user, replacing any prior assignment. The end
// date is computed from the plan duration; a plan with an unrecognized
// duration leaves the user marked "No Subscription" with no end date, which
// downstream entitlement checks treat as not entitled.
func Subscribe(db *gorm.DB, userID, planID uuid.UUID) (user.User, error) {
	p, err := plan.Get(db, planID)
	if err != nil {
		return user.User{}, err
	}

	if _, err := user.Get(db, userID); err != nil {
		return user.User{}, err
	}

	startDate := time.Now()
	endDate := ComputeEndDate(startDate, p.Duration)

	status := types.PlanStatusActive
	if endDate == nil {
		status = types.PlanStatusNoSubscription
	}

	updates := map[string]interface{}{
		"plan_id":       planID,
		"start_date":    startDate,
		"end_date":      endDate,
		"plan_status":   status,
		"is_subscribed": true,
	}

	if err := db.Model(&user.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return user.User{}, err
	}

	return user.GetWithPlan(db, userID)
}

// GetUserWithPlanStatus loads a user with the plan populated and reconciles
// the cached plan_status against the end date, persisting the corrected value
// when it has drifted. Reads self-heal; writes never enforce the invariant.
func GetUserWithPlanStatus(db *gorm.DB, userID uuid.UUID) (user.User, error) {
	usr, err := user.GetWithPlan(db, userID)
	if err != nil {
		return usr, err
	}

	if usr.EndDate == nil {
		return usr, nil
	}

	current := DeriveStatus(time.Now(), usr.EndDate)
	if usr.PlanStatus != current {
		if err := db.Model(&user.User{}).Where("id = ?", userID).Update("plan_status", current).Error; err != nil {
			return usr, err
		}
		usr.PlanStatus = current
	}

	return usr, nil
}
