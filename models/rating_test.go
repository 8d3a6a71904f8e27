package models

import "testing"

func TestIsOpenComplaint(t *testing.T) {
	open := ComplaintOpen
	resolved := ComplaintResolved

	cases := []struct {
		name   string
		rating Rating
		want   bool
	}{
		{"open complaint", Rating{IsComplaint: true, ComplaintStatus: &open}, true},
		{"resolved complaint", Rating{IsComplaint: true, ComplaintStatus: &resolved}, false},
		{"plain rating", Rating{}, false},
		{"complaint without status", Rating{IsComplaint: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rating.IsOpenComplaint(); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
