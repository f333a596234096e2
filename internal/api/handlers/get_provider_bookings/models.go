package get_provider_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает локальные сутки; from/to (YYYY-MM-DD) задают период [from, to+1 день)
func ToServiceRequest(zone timewindow.Zone, providerID uuid.UUID, actor domain.Actor, r *http.Request) (*models.ListProviderBookingsRequest, error) {
	q := r.URL.Query()

	req := &models.ListProviderBookingsRequest{
		Actor:      actor,
		ProviderID: providerID,
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		return nil, fmt.Errorf("invalid staffId: %w", err)
	}
	req.StaffID = staffID

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := zone.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		from, to := zone.DayBounds(date)
		req.From, req.To = &from, &to
	}

	if fromStr := q.Get("from"); fromStr != "" {
		date, err := zone.ParseDate(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		from, _ := zone.DayBounds(date)
		req.From = &from
	}

	if toStr := q.Get("to"); toStr != "" {
		date, err := zone.ParseDate(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		_, to := zone.DayBounds(date)
		req.To = &to
	}

	if includeInactiveStr := q.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	if req.Limit, err = handlers.QueryInt(r, "limit"); err != nil {
		return nil, fmt.Errorf("invalid limit: %w", err)
	}
	if req.Offset, err = handlers.QueryInt(r, "offset"); err != nil {
		return nil, fmt.Errorf("invalid offset: %w", err)
	}

	return req, nil
}
