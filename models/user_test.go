package models

import (
	"reflect"
	"strings"
	"testing"
)

// User deletion is permanent; the rows a user owns must cascade at the
// store level rather than rely on handler cleanup.
func TestUserOwnedRowsCascade(t *testing.T) {
	userType := reflect.TypeOf(User{})

	for _, name := range []string{"Ratings", "Notifications"} {
		field, ok := userType.FieldByName(name)
		if !ok {
			t.Fatalf("User has no %s field", name)
		}
		if !strings.Contains(field.Tag.Get("gorm"), "OnDelete:CASCADE") {
			t.Errorf("User.%s must cascade on user deletion", name)
		}
	}
}
