package user

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/plan"
	"github.com/nexstream/ott-server-go/pkg/pagination"
	"github.com/nexstream/ott-server-go/pkg/types"
)

// User represents a viewer account together with its entitlement columns.
// plan_status is a cached value; reads that matter reconcile it against
// end_date first (see the subscription feature).
type User struct {
	types.BaseModel

	FirstName    string           `gorm:"type:varchar(50);column:first_name" json:"firstName"`
	LastName     string           `gorm:"type:varchar(50);column:last_name" json:"lastName"`
	Email        string           `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Mobile       *string          `gorm:"type:varchar(20)" json:"mobileNo,omitempty"`
	Password     string           `gorm:"type:varchar(255);not null" json:"-"`
	Gender       *types.Gender    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Image        *string          `gorm:"type:varchar(500)" json:"image,omitempty"`
	PlanID       *uuid.UUID       `gorm:"type:uuid;column:plan_id;index" json:"planId,omitempty"`
	IsSubscribed bool             `gorm:"type:boolean;not null;default:false;column:is_subscribed" json:"isSubscribed"`
	StartDate    *time.Time       `gorm:"type:timestamptz;column:start_date" json:"startDate,omitempty"`
	EndDate      *time.Time       `gorm:"type:timestamptz;column:end_date;index" json:"endDate,omitempty"`
	PlanStatus   types.PlanStatus `gorm:"type:varchar(20);not null;default:'No Subscription';column:plan_status" json:"planStatus"`
	Devices      types.JSON       `gorm:"type:jsonb" json:"devices,omitempty"`
	RefreshToken *string          `gorm:"type:text;column:refresh_token" json:"-"`

	// Relations
	Plan *plan.Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// Device is a login fingerprint stored in the devices jsonb column.
type Device struct {
	DeviceID  string    `json:"deviceId"`
	Name      string    `json:"name,omitempty"`
	LastLogin time.Time `json:"lastLogin"`
}

// CreateInput carries data for creating a new user.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    *string
	Password  string
	Gender    *types.Gender
	Image     *string
}

// UpdateInput captures mutable profile fields.
type UpdateInput struct {
	FirstName      *string
	LastName       *string
	Mobile         *string
	MobileProvided bool
	Gender         *types.Gender
	Image          *string
	ImageProvided  bool
}

// ComparePassword checks a plaintext password against the stored bcrypt hash.
func (u *User) ComparePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// DeviceList decodes the devices jsonb column. A missing or malformed column
// yields an empty list.
func (u *User) DeviceList() []Device {
	if len(u.Devices) == 0 {
		return nil
	}
	var devices []Device
	if err := json.Unmarshal(u.Devices, &devices); err != nil {
		return nil
	}
	return devices
}

// List queries users with keyword filtering and pagination.
func List(db *gorm.DB, keyword string, params pagination.Params) ([]User, int64, error) {
	query := db.Model(&User{})

	if keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	if err := query.Order("created_at DESC").Scopes(params.Scope()).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uuid.UUID) (User, error) {
	var usr User
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// GetWithPlan retrieves a user by ID with the plan relation populated.
func GetWithPlan(db *gorm.DB, id uuid.UUID) (User, error) {
	var usr User
	if err := db.Preload("Plan").First(&usr, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// GetByEmail retrieves a user by email.
func GetByEmail(db *gorm.DB, email string) (User, error) {
	var usr User
	if err := db.First(&usr, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return usr, ErrUserNotFound
		}
		return usr, err
	}
	return usr, nil
}

// Create inserts a new user with a hashed password.
func Create(db *gorm.DB, input CreateInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return User{}, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	usr := User{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      email,
		Mobile:     input.Mobile,
		Password:   string(hashed),
		Gender:     input.Gender,
		Image:      input.Image,
		PlanStatus: types.PlanStatusNoSubscription,
	}

	if err := db.Create(&usr).Error; err != nil {
		if strings.Contains(err.Error(), "idx_users_email") {
			return usr, ErrEmailTaken
		}
		return usr, err
	}

	return usr, nil
}

// Update modifies profile fields of an existing user.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (User, error) {
	usr, err := Get(db, id)
	if err != nil {
		return usr, err
	}

	updates := map[string]interface{}{}

	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.MobileProvided {
		if input.Mobile == nil {
			updates["mobile"] = nil
		} else {
			updates["mobile"] = strings.TrimSpace(*input.Mobile)
		}
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}
	if input.ImageProvided {
		if input.Image == nil {
			updates["image"] = nil
		} else {
			updates["image"] = strings.TrimSpace(*input.Image)
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return usr, err
		}
	}

	return Get(db, id)
}

// ChangePassword verifies the current password and stores a new bcrypt hash.
func ChangePassword(db *gorm.DB, id uuid.UUID, currentPassword, newPassword string) error {
	usr, err := Get(db, id)
	if err != nil {
		return err
	}

	if !usr.ComparePassword(currentPassword) {
		return ErrInvalidCredentials
	}

	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Model(&User{}).Where("id = ?", id).Update("password", string(hashed)).Error
}

// RecordDevice appends or refreshes a login device fingerprint.
func RecordDevice(db *gorm.DB, id uuid.UUID, deviceID, name string, now time.Time) error {
	if strings.TrimSpace(deviceID) == "" {
		return nil
	}

	usr, err := Get(db, id)
	if err != nil {
		return err
	}

	devices := usr.DeviceList()
	found := false
	for i := range devices {
		if devices[i].DeviceID == deviceID {
			devices[i].LastLogin = now
			if name != "" {
				devices[i].Name = name
			}
			found = true
			break
		}
	}
	if !found {
		devices = append(devices, Device{DeviceID: deviceID, Name: name, LastLogin: now})
	}

	raw, err := json.Marshal(devices)
	if err != nil {
		return err
	}

	return db.Model(&User{}).Where("id = ?", id).Update("devices", types.JSON(raw)).Error
}

// SetRefreshToken stores (or clears) the refresh token for a user.
func SetRefreshToken(db *gorm.DB, id uuid.UUID, token *string) error {
	return db.Model(&User{}).Where("id = ?", id).Update("refresh_token", token).Error
}

// Delete removes a user account.
func Delete(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
