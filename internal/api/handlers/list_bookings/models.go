package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
)

// ToServiceRequest формирует фильтр из query параметров from, to, status, includeCancelled
func ToServiceRequest(query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		From:   optional(query.Get("from")),
		To:     optional(query.Get("to")),
		Status: optional(query.Get("status")),
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeCancelled=%q is not a boolean", raw)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
