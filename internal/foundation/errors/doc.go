// Package errors classifies the failures of a newspaper export.
//
// A ClassifiedError carries a category (where it came from), a family (how the
// export reacts) and the unit of work it ends. Validation failures end the
// export and their message becomes the recorded problem. Structural
// incompatibilities end only the node being attached. Resource failures end
// whatever unit the caller marks with Ends, the whole export by default.
//
//	err := errors.ValidationError("Issue date 2023/01/01 has the wrong format").
//		WithContext("issue", id).
//		Build()
package errors
