package internal_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestApp_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	track := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(track("global-1"), track("global-2")),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				order = append(order, "handler")
				return c.NoContent(http.StatusOK)
			}, track("route-1"), track("route-2"))
		})),
	)

	w := serve(app, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"global-1", "global-2", "route-1", "route-2", "handler"}, order)
}

func TestRouter_RoutePrefixAndUse(t *testing.T) {
	t.Parallel()

	var seen []string
	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.Route("/api", func(api internal.Router) {
			api.Use(func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					seen = append(seen, c.Request().URL.Path)
					return next(c)
				}
			})
			api.POST("/contact", func(c internal.Context) error { return c.NoContent(http.StatusAccepted) })
		})
		r.GET("/open", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
	})))

	require.Equal(t, http.StatusAccepted, serve(app, http.MethodPost, "/api/contact").Code)
	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/open").Code)
	require.Equal(t, []string{"/api/contact"}, seen)
}

func TestApp_MiddlewareSeesHandlerStatus(t *testing.T) {
	t.Parallel()

	var status int
	app := internal.New(
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				err := next(c)
				status = c.ResponseWriter().Status()
				return err
			}
		}),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.POST("/api/contact", func(c internal.Context) error {
				return c.JSON(http.StatusBadRequest, map[string]bool{"success": false})
			})
		})),
	)

	serve(app, http.MethodPost, "/api/contact")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestApp_ErrorHandling(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	routes := routesFunc(func(r internal.Router) {
		r.GET("/fail", func(internal.Context) error { return boom })
		r.GET("/bad", func(internal.Context) error { return internal.ErrBadRequest("bad") })
		r.GET("/late", func(c internal.Context) error {
			_ = c.String(http.StatusOK, "done")
			return boom
		})
	})

	t.Run("default handler", func(t *testing.T) {
		t.Parallel()
		app := internal.New(internal.WithHandlers(routes))

		require.Equal(t, http.StatusInternalServerError, serve(app, http.MethodGet, "/fail").Code)
		require.Equal(t, http.StatusBadRequest, serve(app, http.MethodGet, "/bad").Code)

		w := serve(app, http.MethodGet, "/late")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "done", w.Body.String())
	})

	t.Run("custom handler", func(t *testing.T) {
		t.Parallel()
		var got error
		app := internal.New(
			internal.WithHandlers(routes),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.JSON(http.StatusInternalServerError, map[string]any{"success": false})
			}),
		)

		w := serve(app, http.MethodGet, "/fail")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.JSONEq(t, `{"success":false}`, w.Body.String())
		require.ErrorIs(t, got, boom)
	})
}

func TestApp_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.POST("/api/contact", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom 404")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return c.String(http.StatusMethodNotAllowed, "custom 405")
		}),
	)

	w := serve(app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "custom 404", w.Body.String())

	w = serve(app, http.MethodGet, "/api/contact")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "custom 405", w.Body.String())
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		app := internal.New(internal.WithHealthChecks(
			internal.WithReadinessCheck("mail", func(context.Context) error { return nil }),
		))

		require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health/live").Code)
		require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health/ready").Code)
	})

	t.Run("unhealthy with custom paths", func(t *testing.T) {
		t.Parallel()
		app := internal.New(internal.WithHealthChecks(
			internal.WithLivenessPath("/livez"),
			internal.WithReadinessPath("/readyz"),
			internal.WithHealthTimeout(time.Second),
			internal.WithReadinessCheck("mail", func(context.Context) error { return errors.New("down") }),
		))

		require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/livez").Code)
		w := serve(app, http.MethodGet, "/readyz?format=json")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "down")
	})
}

func TestApp_Mount(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})))

	w := serve(app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "metrics", w.Body.String())
}

func TestApp_Site(t *testing.T) {
	t.Parallel()

	site := fstest.MapFS{
		"index.html":    {Data: []byte("<html>home</html>")},
		"assets/app.js": {Data: []byte("console.log(1)")},
	}
	app := internal.New(
		internal.WithSite(site),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.POST("/api/contact", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "api 404")
		}),
	)

	tests := []struct {
		name   string
		method string
		target string
		code   int
		body   string
	}{
		{"root serves index", http.MethodGet, "/", http.StatusOK, "<html>home</html>"},
		{"asset", http.MethodGet, "/assets/app.js", http.StatusOK, "console.log(1)"},
		{"client route falls back to index", http.MethodGet, "/projects", http.StatusOK, "<html>home</html>"},
		{"directory falls back to index", http.MethodGet, "/assets/", http.StatusOK, "<html>home</html>"},
		{"unknown api path", http.MethodGet, "/api/unknown", http.StatusNotFound, "api 404"},
		{"non-GET", http.MethodPost, "/projects", http.StatusNotFound, "api 404"},
		{"api route still wins", http.MethodPost, "/api/contact", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(app, tt.method, tt.target)
			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestApp_Run_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{})

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error { return c.String(http.StatusOK, "up") })
	})))

	done := make(chan error, 1)
	go func() {
		done <- app.Run("",
			internal.Listener(ln),
			internal.WithContext(ctx),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				close(hookCalled)
				return nil
			}),
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	<-hookCalled
}

func TestApp_Run_ListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	err = internal.New().Run(ln.Addr().String())
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen")
}
