package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/pathcompare/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

const MAX_BODY_BYTES = 8 << 20

type pathCompareAPI struct {
	pathCompareService PathCompareService
	log                *zap.Logger
	validate           *validator.Validate
	trans              ut.Translator
}

func New(pathCompareService PathCompareService, log *zap.Logger) *pathCompareAPI {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &pathCompareAPI{
		pathCompareService: pathCompareService,
		log:                log,
		validate:           validate,
		trans:              trans,
	}
}

func (api *pathCompareAPI) Routes(group *helper.RouteGroup) {
	group.POST("/pathCompare", api.pathCompare)
}

// pathCompare. clean, detect stays, route and score the fixes of one user.
//
//	@Summary		Compare the route of one user with the shortest paths between its stay points
//	@Description	Cleans the fixes, detects the stay points, routes every leg between consecutive stays and scores the node overlap (jaccard) and length difference of the observed and modeled routes. jaccard is null when both routes are empty.
//	@Tags			pathcompare
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		pathCompareRequest	true	"GPS fixes of one user"
//	@Success		200		{object}	pathCompareResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		415		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/pathCompare [post]
func (api *pathCompareAPI) pathCompare(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request pathCompareRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, api.validationError(err))
		return
	}

	comparison, err := api.pathCompareService.PathCompare(r.Context(), request.UserID, request.ToDataGPS())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPathCompareResponse(comparison)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
