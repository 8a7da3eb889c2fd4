package formview

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// SubmissionSchema describes the payload handed to OnSubmit. favorite_drink is
// optional because it is only present while is_over_21 is checked. The form
// itself never validates; hosts publish or check against this contract.
func SubmissionSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty(FieldFirstName, openapi3.NewStringSchema()).
		WithProperty(FieldLastName, openapi3.NewStringSchema()).
		WithProperty(FieldIsOver21, openapi3.NewBoolSchema()).
		WithProperty(FieldFavoriteDrink, openapi3.NewStringSchema()).
		WithoutAdditionalProperties()
	schema.Title = "FormSubmission"
	schema.Required = []string{FieldFirstName, FieldLastName, FieldIsOver21}
	return schema
}
