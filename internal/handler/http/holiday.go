package http

import (
	"net/http"
	"strconv"

	"github.com/timepulse/timepulse-backend/internal/domain/holiday"
	"github.com/timepulse/timepulse-backend/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	calendar *holiday.Calendar
}

func NewHolidayHandler(calendar *holiday.Calendar) HolidayHandler {
	return &HolidayHandlerImpl{calendar: calendar}
}

type holidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// List returns the configured calendar, optionally limited to ?year=.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays := h.calendar.All()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Invalid year", map[string]string{"year": "year must be an integer"})
			return
		}
		holidays = h.calendar.InYear(year)
	}

	out := make([]holidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		out = append(out, holidayResponse{Date: hd.DateString(), Name: hd.Name})
	}
	response.Success(w, out)
}
