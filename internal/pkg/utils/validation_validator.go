package utils

import (
	"hospital-lab-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("lab_priority", validateLabPriority)
	validate.RegisterValidation("object_id", validateObjectID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLabPriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, priority := range constvars.LabTestPriorities {
		if value == priority {
			return true
		}
	}
	return false
}

func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}
