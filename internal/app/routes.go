package app

import (
	"net/http"

	"github.com/kegliz/qivm/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.compile",
			Method:      http.MethodPost,
			Pattern:     "/api/compile",
			HandlerFunc: a.CompileCircuit,
		},
		{
			Name:        "api.execute",
			Method:      http.MethodPost,
			Pattern:     "/api/execute",
			HandlerFunc: a.ExecuteCircuit,
		},
	}
}
