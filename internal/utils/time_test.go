package utils

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC3339 UTC",
			input: "2024-03-04T10:00:00Z",
			want:  time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset and fraction",
			input: "2024-03-04T10:00:00.250+02:00",
			want:  time.Date(2024, 3, 4, 8, 0, 0, 250*int(time.Millisecond), time.UTC),
		},
		{
			name:  "local date time",
			input: "2024-03-04 10:30:15",
			want:  time.Date(2024, 3, 4, 10, 30, 15, 0, time.Local),
		},
		{
			name:  "local T separated",
			input: " 2024-03-04T10:30:15 ",
			want:  time.Date(2024, 3, 4, 10, 30, 15, 0, time.Local),
		},
		{
			name:  "local without seconds",
			input: "2024-03-04 10:30",
			want:  time.Date(2024, 3, 4, 10, 30, 0, 0, time.Local),
		},
		{
			name:  "unix seconds",
			input: "1709546400",
			want:  time.Unix(1709546400, 0),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "date only", input: "2024-03-04", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.Local {
				t.Errorf("ParseTimestamp(%q) location = %v, want Local", tt.input, got.Location())
			}
		})
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "3600", want: 3600},
		{input: "90.5", want: 90.5},
		{input: "0", want: 0},
		{input: "1h30m", want: 5400},
		{input: "45s", want: 45},
		{input: "-1", wantErr: true},
		{input: "-5m", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "Inf", wantErr: true},
		{input: "", wantErr: true},
		{input: "long", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationSeconds(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDurationSeconds(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDurationSeconds(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "8", want: 8},
		{input: "08", want: 8},
		{input: "0", want: 0},
		{input: "23", want: 23},
		{input: "22:00", want: 22},
		{input: "07:00", want: 7},
		{input: "24", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "8:30", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "eight", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHour(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHour(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHour(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHour(7); got != "07:00" {
		t.Errorf("FormatHour(7) = %q", got)
	}
	tests := []struct {
		secs float64
		want string
	}{
		{secs: 0, want: "0m"},
		{secs: 59 * 60, want: "59m"},
		{secs: 3600, want: "1h00m"},
		{secs: 3*3600 + 5*60, want: "3h05m"},
		{secs: 29, want: "0m"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.secs); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
