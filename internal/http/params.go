package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/sellerhub/market-mock-api/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100

	dateLayout = "2006-01-02"
)

var (
	errBadPage      = errors.New("page must be an integer >= 1")
	errBadPageSize  = errors.New("page_size must be an integer between 1 and 100")
	errBadStartDate = errors.New("start_date must be formatted as YYYY-MM-DD")
	errBadEndDate   = errors.New("end_date must be formatted as YYYY-MM-DD")
	errDateOrder    = errors.New("start_date must not be after end_date")
)

// parseListQuery validates page, page_size, start_date and end_date.
// Unlike a forgiving client SDK, values outside the documented ranges are
// rejected outright so the mock behaves like a strict platform API.
func parseListQuery(c echo.Context) (repository.ListFilter, error) {
	f := repository.ListFilter{Page: defaultPage, PageSize: defaultPageSize}

	if v := strings.TrimSpace(c.QueryParam("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return repository.ListFilter{}, errBadPage
		}
		f.Page = n
	}

	if v := strings.TrimSpace(c.QueryParam("page_size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return repository.ListFilter{}, errBadPageSize
		}
		f.PageSize = n
	}

	if v := strings.TrimSpace(c.QueryParam("start_date")); v != "" {
		d, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return repository.ListFilter{}, errBadStartDate
		}
		f.Start = &d
	}

	if v := strings.TrimSpace(c.QueryParam("end_date")); v != "" {
		d, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return repository.ListFilter{}, errBadEndDate
		}
		// inclusive through end of day
		end := d.Add(24*time.Hour - time.Nanosecond)
		f.End = &end
	}

	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return repository.ListFilter{}, errDateOrder
	}

	return f, nil
}
