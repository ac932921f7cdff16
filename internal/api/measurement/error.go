package measurement

import (
	"net/http"

	"xray-angles/pkg/response"
)

var ErrBadRequest = response.NewError(http.StatusBadRequest, "bad request")
