package qhsedoc

import (
	"testing"
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

var testNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func onDay(offsetDays int) backend.Date {
	return backend.NewDate(testNow.AddDate(0, 0, offsetDays))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusBrouillon, StatusEnValidation, true},
		{StatusEnValidation, StatusValide, true},
		{StatusEnValidation, StatusBrouillon, true},
		{StatusValide, StatusObsolete, true},
		{StatusValide, StatusArchive, true},
		{StatusObsolete, StatusArchive, true},
		{StatusBrouillon, StatusValide, false},
		{StatusValide, StatusBrouillon, false},
		{StatusArchive, StatusValide, false},
		{StatusArchive, StatusObsolete, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanValidate(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"qhse supervisor", []string{"superviseur_qhse"}, true},
		{"superadmin", []string{"superadmin"}, true},
		{"dop", []string{"dop"}, true},
		{"one of several", []string{"technicien", "dop"}, true},
		{"other supervisor", []string{"superviseur_securite"}, false},
		{"operational role", []string{"technicien"}, false},
		{"no roles", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanValidate(tt.roles); got != tt.want {
				t.Errorf("CanValidate(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestNewViewFlags(t *testing.T) {
	tests := []struct {
		name string
		doc  QHSEDocument
		want View
	}{
		{
			name: "expired regardless of stored status",
			doc:  QHSEDocument{Status: StatusValide, ValidityDate: onDay(-10)},
			want: View{Expired: true},
		},
		{
			name: "expiring inside the window",
			doc:  QHSEDocument{Status: StatusValide, ValidityDate: onDay(15)},
			want: View{ExpiringSoon: true},
		},
		{
			name: "valid beyond the window",
			doc:  QHSEDocument{Status: StatusValide, ValidityDate: onDay(90)},
			want: View{},
		},
		{
			name: "review due inside the window",
			doc:  QHSEDocument{Status: StatusValide, ReviewDate: onDay(20)},
			want: View{ReviewDueSoon: true},
		},
		{
			name: "past review date still due",
			doc:  QHSEDocument{Status: StatusValide, ReviewDate: onDay(-5)},
			want: View{ReviewDueSoon: true},
		},
		{
			name: "archived never flags",
			doc:  QHSEDocument{Status: StatusArchive, ValidityDate: onDay(-10), ReviewDate: onDay(-10)},
			want: View{},
		},
		{
			name: "draft with past validity flags too",
			doc:  QHSEDocument{Status: StatusBrouillon, ValidityDate: onDay(-1)},
			want: View{Expired: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewView(tt.doc, testNow, 30)
			if got.Expired != tt.want.Expired {
				t.Errorf("Expired = %v, want %v", got.Expired, tt.want.Expired)
			}
			if got.ExpiringSoon != tt.want.ExpiringSoon {
				t.Errorf("ExpiringSoon = %v, want %v", got.ExpiringSoon, tt.want.ExpiringSoon)
			}
			if got.ReviewDueSoon != tt.want.ReviewDueSoon {
				t.Errorf("ReviewDueSoon = %v, want %v", got.ReviewDueSoon, tt.want.ReviewDueSoon)
			}
		})
	}
}

func TestNewViewExpiredExcludesExpiringSoon(t *testing.T) {
	v := NewView(QHSEDocument{Status: StatusValide, ValidityDate: onDay(-1)}, testNow, 30)
	if !v.Expired || v.ExpiringSoon {
		t.Errorf("expired must not also flag as expiring soon: %+v", v)
	}
}
