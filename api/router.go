package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/qrstudio/api/middleware"
	"github.com/prasetyowira/qrstudio/constant"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// Router handles API routing
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
}

// NewRouter creates a new API router
func NewRouter(handler *Handler, username, password string) *Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(appMiddleware.RequestLogger())

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes() {
	appLogger.Debug(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Post(constant.RouteEncodeQR, r.handler.EncodeQR)
	r.router.Post(constant.RouteRenderQR, r.handler.RenderQR)

	r.router.Get(constant.RouteHistory, r.handler.ListHistory)
	r.router.Post(constant.RouteHistory, r.handler.AddHistory)
	r.router.Delete(constant.RouteHistoryByID, r.handler.RemoveHistory)
	r.router.Get(constant.RouteHistoryRecreate, r.handler.RecreateHistory)
	r.router.Get(constant.RouteHistoryThumbnail, r.handler.HistoryThumbnail)
	r.router.Get(constant.RouteHistoryEvents, r.handler.HistoryEvents)

	// Clearing the whole history is destructive, so it sits behind basic auth.
	creds := map[string]string{r.username: r.password}
	r.router.With(chiMiddleware.BasicAuth("qrstudio", creds)).
		Delete(constant.RouteHistory, r.handler.ClearHistory)

	r.router.Post(constant.RouteUploadLogo, r.handler.UploadLogo)

	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
