package handler

import (
	stderrors "errors"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/delivery/http/middleware"
	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/pkg/errors"
	"github.com/traveller-backend/internal/pkg/utils"
	"github.com/traveller-backend/internal/pkg/validator"
	"github.com/traveller-backend/internal/usecase"
	"github.com/traveller-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// LegacyServerError - тело ответа, которое мобильное приложение ждёт при любой ошибке пайплайна
const LegacyServerError = "server error, check request endpoint"

// PlacesHandler - обработчик поиска мест
type PlacesHandler struct {
	placesUC *usecase.PlacesUseCase
	defaults config.SearchConfig
	logger   *zap.Logger
}

// NewPlacesHandler - создание нового PlacesHandler
func NewPlacesHandler(placesUC *usecase.PlacesUseCase, defaults config.SearchConfig, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		placesUC: placesUC,
		defaults: defaults,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск мест с временем в пути (legacy)
// @Description Ищет места по ключевому слову вокруг точки и возвращает для каждого достижимого места время и расстояние в пути. Недостижимые места не попадают в ответ.
// @Tags Places
// @Produce json
// @Param keyword path string true "Ключевое слово или тип места (cafe, museum, ...)"
// @Param lat query number false "Широта" default(37.7825177)
// @Param long query number false "Долгота" default(-122.4106772)
// @Param radius query int false "Радиус поиска в метрах" default(50000)
// @Param mode query string false "car, bike, walk, transit" default(transit)
// @Param date query string false "Время отправления: now или unix timestamp" default(now)
// @Param size query int false "Максимум мест до фильтрации" default(200)
// @Success 200 {array} domain.TravelRecord
// @Header 200 {integer} X-Failed-Batches "Число батчей, завершившихся ошибкой"
// @Failure 400 {object} utils.LegacyErrorResponse
// @Failure 500 {object} utils.LegacyErrorResponse
// @Router /places/{keyword} [get]
func (h *PlacesHandler) Search(c *fiber.Ctx) error {
	req, err := h.parseSearch(c)
	if err != nil {
		return utils.SendLegacyError(c, fiber.StatusBadRequest, legacyMessage(err))
	}

	result, err := h.placesUC.Search(c.UserContext(), req)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.StatusCode < fiber.StatusInternalServerError {
			return utils.SendLegacyError(c, appErr.StatusCode, legacyMessage(err))
		}
		return utils.SendLegacyError(c, fiber.StatusInternalServerError, LegacyServerError)
	}

	setFailedBatches(c, result)
	return c.JSON(result.Records)
}

// SearchV1 godoc
// @Summary Поиск мест с временем в пути
// @Description То же, что /places/{keyword}, но в стандартной обёртке с метаданными по батчам
// @Tags Places
// @Produce json
// @Param keyword path string true "Ключевое слово или тип места"
// @Param lat query number false "Широта" default(37.7825177)
// @Param long query number false "Долгота" default(-122.4106772)
// @Param radius query int false "Радиус поиска в метрах" default(50000)
// @Param mode query string false "car, bike, walk, transit" default(transit)
// @Param date query string false "Время отправления: now или unix timestamp" default(now)
// @Param size query int false "Максимум мест до фильтрации" default(200)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TravelRecord}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/places/search/{keyword} [get]
func (h *PlacesHandler) SearchV1(c *fiber.Ctx) error {
	req, err := h.parseSearch(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.placesUC.Search(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, providerError(err))
	}

	setFailedBatches(c, result)
	return utils.SendSuccess(c, result.Records, &utils.Meta{
		Total:      len(result.Records),
		TimeMSec:   float64(time.Since(start).Microseconds()) / 1000,
		Candidates: result.Candidates,
		Batches:    result.Batches,
	})
}

// Details godoc
// @Summary Детали места (legacy)
// @Tags Places
// @Produce json
// @Param placeId path string true "Google place id"
// @Success 200 {object} dto.PlaceDetailsResponse
// @Failure 404 {object} utils.LegacyErrorResponse
// @Failure 500 {object} utils.LegacyErrorResponse
// @Router /places/details/{placeId} [get]
func (h *PlacesHandler) Details(c *fiber.Ctx) error {
	req, err := parseDetails(c)
	if err != nil {
		return utils.SendLegacyError(c, fiber.StatusBadRequest, legacyMessage(err))
	}

	details, err := h.placesUC.Details(c.UserContext(), req)
	if err != nil {
		if stderrors.Is(err, errors.ErrPlaceNotFound) {
			return utils.SendLegacyError(c, fiber.StatusNotFound, "place not found")
		}
		return utils.SendLegacyError(c, fiber.StatusInternalServerError, LegacyServerError)
	}

	return c.JSON(dto.PlaceDetailsResponse{Name: details.Name, URL: details.URL})
}

// DetailsV1 godoc
// @Summary Детали места
// @Tags Places
// @Produce json
// @Param placeId path string true "Google place id"
// @Success 200 {object} utils.SuccessResponse{data=domain.PlaceDetails}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/places/details/{placeId} [get]
func (h *PlacesHandler) DetailsV1(c *fiber.Ctx) error {
	req, err := parseDetails(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	details, err := h.placesUC.Details(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, providerError(err))
	}

	return utils.SendSuccess(c, details, nil)
}

// parseSearch заполняет значения по умолчанию, затем накладывает query-параметры
func (h *PlacesHandler) parseSearch(c *fiber.Ctx) (dto.PlacesSearchRequest, error) {
	req := dto.PlacesSearchRequest{
		Lat:    h.defaults.DefaultLat,
		Long:   h.defaults.DefaultLong,
		Radius: h.defaults.DefaultRadius,
		Mode:   string(domain.DefaultTravelMode),
		Date:   "now",
		Size:   h.defaults.DefaultSize,
	}

	if err := c.QueryParser(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	keyword, err := url.PathUnescape(c.Params("keyword"))
	if err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "malformed keyword",
		})
	}
	req.Keyword = keyword

	if err := validator.Validate(&req); err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	return req, nil
}

func parseDetails(c *fiber.Ctx) (dto.PlaceDetailsRequest, error) {
	placeID, err := url.PathUnescape(c.Params("placeId"))
	req := dto.PlaceDetailsRequest{PlaceID: placeID}
	if err == nil {
		err = validator.Validate(&req)
	}
	if err != nil {
		return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return req, nil
}

// providerError переводит ошибки пайплайна в AppError для v1 API
func providerError(err error) error {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, domain.ErrRateLimited):
		return errors.ErrProviderRateLimited
	default:
		return errors.ErrProviderUnavailable.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
}

func legacyMessage(err error) string {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return LegacyServerError
	}
	if reason, ok := appErr.Details["reason"].(string); ok && reason != "" {
		return appErr.Message + ": " + reason
	}
	return appErr.Message
}

func setFailedBatches(c *fiber.Ctx, result *domain.SearchResult) {
	if failed := result.FailedBatches(); failed > 0 {
		c.Set(middleware.FailedBatchesHeader, strconv.Itoa(failed))
	}
}
