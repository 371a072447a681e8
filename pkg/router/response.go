package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type response struct {
	Code  errorx.Code `json:"code"`
	Error string      `json:"error,omitempty"`
	Data  any         `json:"data,omitempty"`
}

func newErrorResponse(err error) (int, response) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return errx.Code.HTTPStatus(), response{Code: errx.Code, Error: errx.Message}
}

func writeResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)

	status, resp := http.StatusOK, response{Data: xcontext.Response(ctx)}
	if err := xcontext.Error(ctx); err != nil {
		status, resp = newErrorResponse(err)
	}

	if err := WriteJSON(w, status, resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
