package controllers

import (
	"net/http"
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	helper "github.com/lintang-b-s/osm-places/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/osm-places/pkg/searcher"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type placesAPI struct {
	placeService PlaceService
	home         HomePage
	baseURL      string
	log          *zap.Logger
}

func New(placeService PlaceService, home HomePage, baseURL string, log *zap.Logger) *placesAPI {
	return &placesAPI{
		placeService: placeService,
		home:         home,
		baseURL:      strings.TrimRight(baseURL, "/"),
		log:          log,
	}
}

func (api *placesAPI) Routes(group *helper.RouteGroup) {
	for _, kind := range datastructure.Kinds {
		group.Read("/"+kind.String()+"/:id", api.getPlace(kind))
	}
	group.Read("/search", api.search)
	group.Read("/", api.root)
	group.Read("/osm/*path", api.legacyRedirect)
}

// getPlace godoc
// @Summary		get one osm object as an ActivityStreams Place.
// @Description	looks up a node, way or relation by id and returns it as a Place document.
// @Tags			places
// @ID get-place
// @Param			kind	path	string	true	"osm object type"	Enums(node, way, relation)
// @Param			id		path	int		true	"osm object id"
// @Produce		application/activity+json
// @Router			/{kind}/{id} [get]
// @Success		200	{object}	datastructure.Place
// @Failure		400	{object}	problem
// @Failure		404	{object}	problem
// @Failure		502	{object}	problem
func (api *placesAPI) getPlace(kind datastructure.Kind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		place, err := api.placeService.GetPlace(r.Context(), kind.String(), ps.ByName("id"))
		if err != nil {
			api.errorResponse(w, r, err)
			return
		}

		if err := writeJSON(api.log, w, http.StatusOK, activityJSON, place, nil); err != nil {
			api.log.Debug("place response not delivered", zap.Error(err))
		}
	}
}

// search godoc
// @Summary		search places by name and/or bounding box.
// @Description	exact name matches come before partial ones; within each, nodes then ways then relations. At most 100 results.
// @Tags			places
// @ID search
// @Param			q		query	string	false	"name to search for, at least 3 characters"
// @Param			bbox	query	string	false	"bounding box: minLon,minLat,maxLon,maxLat"
// @Produce		application/activity+json
// @Router			/search [get]
// @Success		200	{object}	datastructure.Collection
// @Failure		400	{object}	problem
// @Failure		502	{object}	problem
func (api *placesAPI) search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	params := searcher.RawParams{
		Query: query.Get("q"),
		BBox:  query.Get("bbox"),
	}

	collection, err := api.placeService.Search(r.Context(), params, r.URL.RequestURI())
	if err != nil {
		api.errorResponse(w, r, err)
		return
	}

	if err := writeJSON(api.log, w, http.StatusOK, activityJSON, collection, nil); err != nil {
		api.log.Debug("search response not delivered", zap.Error(err))
	}
}

func (api *placesAPI) root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := api.home.Page()
	if err != nil {
		api.log.Error("rendering home page", zap.Error(err))
		WriteProblem(api.log, w, r, http.StatusInternalServerError, "Error reading README.md")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// legacyRedirect sends /osm/<kind>/<id> to /<kind>/<id>, keeping the query string.
func (api *placesAPI) legacyRedirect(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rest := strings.TrimPrefix(ps.ByName("path"), "/")
	if rest == "" {
		api.NotFoundResponse(w, r)
		return
	}
	target := api.baseURL + "/" + rest
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
