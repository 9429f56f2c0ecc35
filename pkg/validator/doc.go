// Package validator provides rule-based validation that reports every failing field.
//
// Rules are plain values built by constructors such as RequiredString and evaluated by Apply:
//
//	err := validator.Apply(
//		validator.RequiredString("name", req.Name),
//		validator.RequiredString("email", req.Email),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		// ve.Fields() lists the failed fields
//	}

package validator
