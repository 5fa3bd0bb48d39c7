package controllers

import (
	"errors"
	"net/http"

	"github.com/lintang-b-s/osm-places/pkg/apperr"

	"go.uber.org/zap"
)

// problem is an RFC 7807 problem document.
//
//	@Description	error response.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// extension members of validation problems
	Param      string `json:"param,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

func newProblem(status int, detail, instance string) problem {
	return problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// WriteProblem writes a problem document for the request.
func WriteProblem(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(log, w, newProblem(status, detail, r.URL.RequestURI()))
}

func writeProblem(log *zap.Logger, w http.ResponseWriter, p problem) {
	_ = writeJSON(log, w, p.Status, problemJSON, p, nil)
}

// errorResponse maps service errors onto problem documents. Details of unexpected errors are
// logged, not returned.
func (api *placesAPI) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		p := newProblem(appErr.HTTPStatus(), appErr.Message, r.URL.RequestURI())
		p.Param, p.Constraint = appErr.Param, appErr.Constraint
		writeProblem(api.log, w, p)
	case apperr.KindNotFound:
		WriteProblem(api.log, w, r, appErr.HTTPStatus(), appErr.Message)
	case apperr.KindBackend:
		api.log.Error("backend failure", zap.String("uri", r.URL.RequestURI()), zap.Error(err))
		WriteProblem(api.log, w, r, appErr.HTTPStatus(), "The place data backend failed to answer the request.")
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *placesAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("unexpected error", zap.String("uri", r.URL.RequestURI()), zap.Error(err))
	WriteProblem(api.log, w, r, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (api *placesAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	WriteProblem(api.log, w, r, http.StatusNotFound, "No route for this URL")
}

func (api *placesAPI) MethodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	WriteProblem(api.log, w, r, http.StatusMethodNotAllowed, "Method "+r.Method+" is not allowed for this URL")
}
