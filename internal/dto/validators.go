package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// RegisterCustomValidators registers the enum validators used by request
// binding tags on gin's validator engine. Call once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return domain.ProjectStatus(fl.Field().String()).IsValid()
	})
}
