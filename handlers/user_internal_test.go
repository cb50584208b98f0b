package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "translated by gorm", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped translated", err: fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "postgres foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "message mentions a unique constraint", err: errors.New("UNIQUE constraint failed: users.email"), want: false},
		{name: "other error", err: errors.New("connection reset"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
