package export_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
)

const defaultFormat = "csv"

// ParseQuery разбирает формат выгрузки и фильтр бронирований
func ParseQuery(query url.Values) (string, *models.ListRequest, error) {
	format := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if format == "" {
		format = defaultFormat
	}

	req := &models.ListRequest{
		From:   optional(query.Get("from")),
		To:     optional(query.Get("to")),
		Status: optional(query.Get("status")),
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return "", nil, fmt.Errorf("includeCancelled=%q is not a boolean", raw)
		}
		req.IncludeCancelled = include
	}

	return format, req, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
