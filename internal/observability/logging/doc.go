// Package logging builds the slog JSON logger used by the server and attaches
// request IDs to it.
//
//	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("fetching news")
//	}
package logging
