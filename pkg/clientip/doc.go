// Package clientip extracts the client address of an HTTP request.
//
// GetIP consults proxy headers in priority order before falling back to the
// connection address:
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Header values are parsed and normalized; malformed or unspecified addresses
// (0.0.0.0, ::) are skipped. Only use GetIP behind a proxy that overwrites
// these headers, otherwise any client can choose its own address. RemoteIP
// ignores headers entirely.
//
//	key := clientip.RemoteIP(r)
//	if trustProxy {
//		key = clientip.GetIP(r)
//	}
package clientip
