package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deemkeen/crownconsole/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRouter builds the HTTP side of the console. source may be nil, in
// which case no feed routes are registered.
func NewRouter(conf *util.AppConfig, source PunishmentSource) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(gzip.Gzip(gzip.DefaultCompression))
	g.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(5), 10)))
	g.Use(MaxBytesMiddleware(64 * 1024))

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    util.Name,
			"version": util.GetVersion(),
		})
	})

	if conf.Conf.WithFeed && source != nil {
		g.GET("/feed.rss", HandleFeed(source, conf, formatRSS))
		g.GET("/feed.atom", HandleFeed(source, conf, formatAtom))
	}
	return g
}

// Serve runs handler on the configured HTTP port until ctx is done.
func Serve(ctx context.Context, conf *util.AppConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.Conf.Host, conf.Conf.HttpPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.Logger().Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
