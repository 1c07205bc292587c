// Package binder decodes request bodies into Go values.
//
//	var req credentialsRequest
//	if err := binder.JSON()(ctx.Request(), &req); err != nil {
//		return response.Error(err)
//	}
//
// Binding errors implement StatusCode, so passing them to response.Error
// yields 400, 413 or 415 without extra mapping.
package binder
