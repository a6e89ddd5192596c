package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOk bool
	}{
		{name: "valid date", input: "2024-01-15", wantOk: true},
		{name: "empty string", input: "", wantOk: false},
		{name: "garbage", input: "not-a-date", wantOk: false},
		{name: "wrong layout", input: "15-01-2024", wantOk: false},
		{name: "month only", input: "2024-01", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseDate(tt.input)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "same month",
			start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			want:  []string{"2024-02"},
		},
		{
			name:  "across year boundary",
			start: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			want:  []string{"2023-11", "2023-12", "2024-01", "2024-02"},
		},
		{
			name:  "start after end",
			start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Months(tt.start, tt.end))
		})
	}
}

func TestCalendar(t *testing.T) {
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		member models.Member
		want   []string
	}{
		{
			name:   "anchored on membership start date",
			member: models.Member{MembershipStartDate: "2024-01-01", JoinDate: "2023-06-01"},
			want:   []string{"2024-02", "2024-03", "2024-04"},
		},
		{
			name:   "falls back to join date",
			member: models.Member{JoinDate: "2024-02-10"},
			want:   []string{"2024-03", "2024-04"},
		},
		{
			name:   "unparseable dates fall back to now, empty calendar",
			member: models.Member{MembershipStartDate: "??", JoinDate: "also bad"},
			want:   nil,
		},
		{
			name:   "joined this month, liability starts next month",
			member: models.Member{JoinDate: "2024-04-02"},
			want:   nil,
		},
		{
			name:   "membership end date in the past caps the range",
			member: models.Member{JoinDate: "2023-10-01", MembershipEndDate: "2024-01-20"},
			want:   []string{"2023-11", "2023-12", "2024-01"},
		},
		{
			name:   "membership end date in the future is ignored",
			member: models.Member{JoinDate: "2024-01-05", MembershipEndDate: "2025-01-01"},
			want:   []string{"2024-02", "2024-03", "2024-04"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calendar(tt.member, now))
		})
	}
}

func TestFirstLiabilityKey(t *testing.T) {
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	member := models.Member{MembershipStartDate: "2024-01-01"}
	assert.Equal(t, "2024-02", FirstLiabilityKey(member, now))

	// Зарегистрирован в текущем месяце: первый платёжный месяц в будущем.
	member = models.Member{JoinDate: "2024-04-02"}
	assert.Equal(t, "2024-05", FirstLiabilityKey(member, now))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, "2024-07", AddMonths("2024-05", 2))
	assert.Equal(t, "2025-01", AddMonths("2024-11", 2))
	assert.Equal(t, "bad-key", AddMonths("bad-key", 2))
}
