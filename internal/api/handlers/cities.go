package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"pv-battery-estimator/internal/api/models"
	"pv-battery-estimator/internal/data"
	"pv-battery-estimator/internal/logger"

	"github.com/gin-gonic/gin"
)

// CitiesHandler serves the city catalogue.
type CitiesHandler struct {
	file string
	log  logger.Logger
}

func NewCitiesHandler(file string, log logger.Logger) *CitiesHandler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &CitiesHandler{file: file, log: log}
}

// ListCities handles GET /api/v1/cities
func (h *CitiesHandler) ListCities(c *gin.Context) {
	list, err := data.LoadCities(h.file)
	if err != nil {
		// A missing catalogue is an empty one.
		if errors.Is(err, fs.ErrNotExist) {
			list = &data.CityList{}
		} else {
			h.log.Errorf("failed to load cities from %s: %v", h.file, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "CITIES_LOAD_ERROR",
					Message: "failed to load cities",
				},
			})
			return
		}
	}

	cities := make([]models.CityInfo, len(list.Cities))
	for i, city := range list.Cities {
		cities[i] = models.CityInfo{
			ID:       city.ID,
			Name:     city.Name,
			Province: city.Province,
			Lat:      city.Lat,
			Lon:      city.Lon,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"cities":     cities,
		"updated_at": list.UpdatedAt,
		"count":      len(cities),
	})
}
