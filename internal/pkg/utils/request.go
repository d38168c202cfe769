package utils

import (
	"errors"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.URLQueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.URLQueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = constvars.AppDefaultPage
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = constvars.AppDefaultPageSize
	}
	if pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppMaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildLabTestFilterRequest(r *http.Request) requests.LabTestFilter {
	query := r.URL.Query()
	return requests.LabTestFilter{
		Status:     strings.TrimSpace(query.Get(constvars.URLQueryParamStatus)),
		Priority:   strings.TrimSpace(query.Get(constvars.URLQueryParamPriority)),
		PatientID:  strings.TrimSpace(query.Get(constvars.URLQueryParamPatientID)),
		Department: strings.TrimSpace(query.Get(constvars.URLQueryParamDepartment)),
		Pagination: BuildPaginationRequest(r),
	}
}

func BuildAvailableLabTechsRequest(r *http.Request) requests.AvailableLabTechsQuery {
	query := r.URL.Query()
	return requests.AvailableLabTechsQuery{
		Department: strings.TrimSpace(query.Get(constvars.URLQueryParamDepartment)),
		TestType:   strings.TrimSpace(query.Get(constvars.URLQueryParamTestType)),
	}
}

// BuildDateRangeRequest reads the from and to query params. A date without a
// time covers the whole day, so to=2024-01-31 includes the 31st.
func BuildDateRangeRequest(r *http.Request) (requests.DateRange, error) {
	var dateRange requests.DateRange
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get(constvars.URLQueryParamFrom)); raw != "" {
		from, _, err := ParseDateParam(raw)
		if err != nil {
			return dateRange, err
		}
		dateRange.From = &from
	}

	if raw := strings.TrimSpace(query.Get(constvars.URLQueryParamTo)); raw != "" {
		to, dateOnly, err := ParseDateParam(raw)
		if err != nil {
			return dateRange, err
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		dateRange.To = &to
	}

	if dateRange.From != nil && dateRange.To != nil && dateRange.From.After(*dateRange.To) {
		return dateRange, errors.New("from must not be after to")
	}

	return dateRange, nil
}

// ParseDateParam accepts RFC3339 or YYYY-MM-DD and reports which one matched.
func ParseDateParam(raw string) (time.Time, bool, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, false, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return parsed, true, nil
}
