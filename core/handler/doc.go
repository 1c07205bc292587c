// Package handler defines the request-processing types shared by the router,
// the response helpers and the middleware: a request Context, handlers that
// return a deferred Response, error handlers and middleware.
//
// Handlers never write to the ResponseWriter directly. They return a Response
// closure, which lets middleware decorate the response (headers, cookies)
// before it is rendered:
//
//	func me(ctx *tasktrackr.Context) handler.Response {
//		profile, err := svc.Profile(ctx, ctx.UserID())
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(profile)
//	}
package handler
