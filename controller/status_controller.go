package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/server"
)

type StatusController struct {
}

func ProvideStatusController() *StatusController {
	return &StatusController{}
}

func (sc *StatusController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "Alliance RAG API is running"})
}

func (sc *StatusController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/",
			Method:  http.MethodGet,
			Handler: sc.HandleStatus,
		},
	}
}
