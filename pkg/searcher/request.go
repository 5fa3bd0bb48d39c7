package searcher

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/apperr"
	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/geo"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const (
	MinTermLength = 3
)

var (
	bboxNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	requestValidate = newRequestValidator()
)

// RawParams are the search query parameters exactly as received.
type RawParams struct {
	Query string // q
	BBox  string // bbox=minLon,minLat,maxLon,maxLat
}

// Request is a validated search request. At least one of Term and BoundingBox is set.
type Request struct {
	Term        string
	BoundingBox *geo.BoundingBox
}

type termParams struct {
	Query string `name:"q" validate:"omitempty,min=3"`
}

type bboxParams struct {
	MinLon float64 `name:"bbox min longitude" validate:"gte=-180,lte=180"`
	MinLat float64 `name:"bbox min latitude" validate:"gte=-90,lte=90"`
	MaxLon float64 `name:"bbox max longitude" validate:"gte=-180,lte=180"`
	MaxLat float64 `name:"bbox max latitude" validate:"gte=-90,lte=90"`
}

type lookupParams struct {
	Kind string `name:"type" validate:"required,oneof=node way relation"`
	ID   string `name:"id" validate:"required,number"`
}

type requestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestValidator() *requestValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("name"); name != "" {
			return name
		}
		return fld.Name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &requestValidator{validate: validate, trans: trans}
}

// check validates s and reports the first failed rule as a validation error on param,
// or on the failing field's name when param is empty.
func (rv *requestValidator) check(param string, s any) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return apperr.Validation(param, "invalid", err.Error())
	}
	fe := validationErrs[0]
	if param == "" {
		param = fe.Field()
	}
	return apperr.Validation(param, fe.Tag(), fe.Translate(rv.trans))
}

// ValidateRequest checks the raw search parameters before any backend is queried.
func ValidateRequest(params RawParams) (Request, error) {
	if params.Query == "" && params.BBox == "" {
		return Request{}, apperr.Validation("q", "required_without",
			"At least one of q or bbox argument required")
	}

	if err := requestValidate.check("q", termParams{Query: params.Query}); err != nil {
		return Request{}, err
	}

	req := Request{Term: params.Query}
	if params.BBox == "" {
		return req, nil
	}

	bb, err := parseBoundingBox(params.BBox)
	if err != nil {
		return Request{}, err
	}
	req.BoundingBox = &bb
	return req, nil
}

func parseBoundingBox(raw string) (geo.BoundingBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return geo.BoundingBox{}, apperr.Validation("bbox", "len",
			"bbox parameter must be 4 comma-separated numbers")
	}

	values := make([]float64, len(parts))
	for i, part := range parts {
		if !bboxNumber.MatchString(part) {
			return geo.BoundingBox{}, apperr.Validation("bbox", "number",
				"bbox parameter must be 4 comma-separated numbers")
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return geo.BoundingBox{}, apperr.Validation("bbox", "number",
				"bbox parameter must be 4 comma-separated numbers")
		}
		values[i] = v
	}

	params := bboxParams{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}
	if err := requestValidate.check("bbox", params); err != nil {
		return geo.BoundingBox{}, err
	}
	return geo.NewBoundingBox(params.MinLon, params.MinLat, params.MaxLon, params.MaxLat), nil
}

// ValidateLookup checks the type and id path segments of a single object lookup.
func ValidateLookup(kind, id string) (datastructure.Kind, int64, error) {
	if err := requestValidate.check("", lookupParams{Kind: kind, ID: id}); err != nil {
		return "", 0, err
	}
	osmID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return "", 0, apperr.Validation("id", "number", "Place ID parameter must be an integer; got "+id)
	}
	return datastructure.Kind(kind), osmID, nil
}
