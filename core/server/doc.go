// Package server runs an http.Handler with sane timeouts and graceful
// shutdown, designed to be driven by an errgroup:
//
//	srv, err := server.New(cfg.Server, server.WithLogger(log))
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	err = g.Wait()
//
// Cancelling ctx stops accepting connections and waits up to the shutdown
// timeout for in-flight requests.
package server
