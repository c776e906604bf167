package domain

import (
	"strings"

	"github.com/oapi-codegen/nullable"
)

// Job is a listing posted by a company. Salary and Equity are nullable;
// Equity stays a decimal string so NUMERIC precision survives the round trip.
type Job struct {
	ID            int      `json:"id" gorm:"primaryKey"`
	Title         string   `json:"title" gorm:"not null"`
	Salary        *int     `json:"salary" gorm:"type:integer;check:salary >= 0"`
	Equity        *string  `json:"equity" gorm:"type:numeric;check:equity <= 1.0"`
	CompanyHandle string   `json:"companyHandle,omitempty" gorm:"size:25;not null;index"`
	Company       *Company `json:"company,omitempty" gorm:"foreignKey:CompanyHandle;references:Handle;constraint:OnDelete:CASCADE"`
}

// JobCreate is the payload accepted when posting a new job.
type JobCreate struct {
	Title         string  `json:"title" binding:"required"`
	Salary        *int    `json:"salary" binding:"omitempty,min=0"`
	Equity        *string `json:"equity" binding:"omitempty,numeric"`
	CompanyHandle string  `json:"companyHandle" binding:"required"`
}

// JobUpdate carries a partial update. Unspecified fields are left alone;
// a null clears the column.
type JobUpdate struct {
	Title  nullable.Nullable[string] `json:"title,omitempty"`
	Salary nullable.Nullable[int]    `json:"salary,omitempty"`
	Equity nullable.Nullable[string] `json:"equity,omitempty"`
}

func (u JobUpdate) IsEmpty() bool {
	return !u.Title.IsSpecified() && !u.Salary.IsSpecified() && !u.Equity.IsSpecified()
}

// Validate rejects values the jobs table cannot hold. Title is NOT NULL and,
// as on create, must not be blank.
func (u JobUpdate) Validate() error {
	if !u.Title.IsSpecified() {
		return nil
	}
	if u.Title.IsNull() {
		return BadRequest("title must not be null")
	}
	if strings.TrimSpace(u.Title.MustGet()) == "" {
		return BadRequest("title must not be empty")
	}
	return nil
}

// ValueOf turns a specified Nullable into the pointer bound as a query
// argument: nil for null.
func ValueOf[T any](n nullable.Nullable[T]) *T {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v := n.MustGet()
	return &v
}
