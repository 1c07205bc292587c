// Package tasktrackr is the HTTP API of the task tracker's account boundary.
//
// Routes:
//
//	POST /register  {"email","password"}  -> {"success":true} + session cookie
//	POST /login     {"email","password"}  -> {"success":true} + session cookie
//	GET  /logout                          -> {"success":true}, session revoked
//	GET  /me                              -> {"id","email","created_at"} or 401
//	GET  /live, GET /ready                -> probes
//
// Errors are JSON objects of the form {"code":"...","error":"..."}. Failed
// logins look the same whether the email is unknown or the password is
// wrong, and every unauthenticated request to /me gets the same 401.
//
// New assembles the app from Config; OpenStores connects the postgres and
// redis backends when selected, otherwise everything runs in memory.
package tasktrackr
