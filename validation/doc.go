// Package validation turns invalid input into BAD_REQUEST errors.
//
// Struct tag validation uses go-playground/validator:
//
//	type CreateItem struct {
//	    Name  string `json:"name" validate:"required,max=64"`
//	    Price int    `json:"price" validate:"gte=0"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    response.Abort(c, err)
//	}
//
// Programmatic checks collect field errors before producing one error:
//
//	v := validation.New()
//	v.Required("name", name).MaxLength("name", name, 64)
//	if err := v.Validate(); err != nil { ... }
package validation
