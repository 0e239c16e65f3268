package user

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexstream/ott-server-go/pkg/types"
)

func TestComparePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	usr := User{Password: string(hash)}

	if !usr.ComparePassword("correct horse") {
		t.Error("ComparePassword() = false for matching password")
	}
	if usr.ComparePassword("battery staple") {
		t.Error("ComparePassword() = true for wrong password")
	}
}

func TestDeviceList(t *testing.T) {
	tests := []struct {
		name    string
		devices types.JSON
		want    int
	}{
		{
			name:    "empty column",
			devices: nil,
			want:    0,
		},
		{
			name:    "malformed column",
			devices: types.JSON(`not-json`),
			want:    0,
		},
		{
			name:    "two devices",
			devices: types.JSON(`[{"deviceId":"a","lastLogin":"2024-06-01T00:00:00Z"},{"deviceId":"b","lastLogin":"2024-06-02T00:00:00Z"}]`),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Devices: tt.devices}
			if got := usr.DeviceList(); len(got) != tt.want {
				t.Errorf("DeviceList() returned %d devices, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDeviceListPreservesIDs(t *testing.T) {
	usr := User{Devices: types.JSON(`[{"deviceId":"tv-living-room","name":"Living Room TV","lastLogin":"2024-06-01T00:00:00Z"}]`)}

	devices := usr.DeviceList()
	if len(devices) != 1 {
		t.Fatalf("DeviceList() returned %d devices, want 1", len(devices))
	}
	if devices[0].DeviceID != "tv-living-room" || devices[0].Name != "Living Room TV" {
		t.Errorf("unexpected device payload: %+v", devices[0])
	}
}
