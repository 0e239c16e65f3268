package validation

import "testing"

func TestNormalizeUPIHandle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple handle", input: "asha@upi", want: "asha@upi"},
		{name: "uppercase is lowered", input: "Asha.Rao@OKBank", want: "asha.rao@okbank"},
		{name: "surrounding whitespace trimmed", input: "  asha@upi  ", want: "asha@upi"},
		{name: "dots hyphens underscores allowed", input: "a.b-c_d@ybl", want: "a.b-c_d@ybl"},
		{name: "missing provider", input: "asha", wantErr: true},
		{name: "empty local part", input: "@upi", wantErr: true},
		{name: "spaces inside handle", input: "not a handle@upi", wantErr: true},
		{name: "numeric provider", input: "asha@123", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUPIHandle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeUPIHandle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("NormalizeUPIHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
