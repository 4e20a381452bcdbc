package dashboard

import "net/http"

// Route paths served by the dashboard.
const (
	PathIndex      = "/"
	PathUpdate     = "/_dash-update"
	PathSites      = "/api/sites"
	PathSummary    = "/api/summary"
	PathScatter    = "/api/scatter"
	PathPieSVG     = "/charts/pie.svg"
	PathScatterSVG = "/charts/scatter.svg"
	PathHealth     = "/healthz"
)

// Service defines the dashboard route handlers consumed by RegisterRoutes.
type Service interface {
	HandleIndex(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleSites(w http.ResponseWriter, r *http.Request)
	HandleSummary(w http.ResponseWriter, r *http.Request)
	HandleScatter(w http.ResponseWriter, r *http.Request)
	HandlePieSVG(w http.ResponseWriter, r *http.Request)
	HandleScatterSVG(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires dashboard routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc("GET "+PathIndex+"{$}", service.HandleIndex)
	mux.HandleFunc("POST "+PathUpdate, service.HandleUpdate)
	mux.HandleFunc("GET "+PathSites, service.HandleSites)
	mux.HandleFunc("GET "+PathSummary, service.HandleSummary)
	mux.HandleFunc("GET "+PathScatter, service.HandleScatter)
	mux.HandleFunc("GET "+PathPieSVG, service.HandlePieSVG)
	mux.HandleFunc("GET "+PathScatterSVG, service.HandleScatterSVG)
	mux.HandleFunc("GET "+PathHealth, service.HandleHealth)
}
