package targets

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "list-targets",
		Method:      http.MethodGet,
		Path:        "/api/v1/targets",
		Summary:     "List AR targets",
		Description: "Returns the current user and their targets. Empty list when nobody is logged in.",
		Tags:        []string{"targets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "get-target",
		Method:      http.MethodGet,
		Path:        "/api/v1/targets/{id}",
		Summary:     "Get AR target",
		Description: "Returns one target from the last loaded list",
		Tags:        []string{"targets"},
		Middlewares: h.protected,
	}
}
