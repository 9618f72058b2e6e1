package services

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"edupath/internal/repositories"
	"edupath/pkg/utils"
)

const (
	defaultCollegePage  = 1
	defaultCollegeLimit = 10
	maxCollegeLimit     = 100
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
)

type filterField struct {
	column string
	kind   fieldKind
}

var collegeFilterFields = map[string]filterField{
	"name":             {"name", kindString},
	"city":             {"city", kindString},
	"location.city":    {"city", kindString},
	"state":            {"state", kindString},
	"location.state":   {"state", kindString},
	"country":          {"country", kindString},
	"location.country": {"country", kindString},
	"pincode":          {"pincode", kindString},
	"location.pincode": {"pincode", kindString},
	"type":             {"type", kindString},
	"established":      {"established", kindInt},
	"rating":           {"rating", kindFloat},
	"isFeatured":       {"is_featured", kindBool},
	"is_featured":      {"is_featured", kindBool},
}

var collegeSelectFields = map[string][]string{
	"name":             {"name"},
	"location":         {"address", "city", "state", "country", "pincode", "latitude", "longitude"},
	"type":             {"type"},
	"established":      {"established"},
	"rating":           {"rating"},
	"contact":          {"contact_email", "contact_phone", "website", "social_media"},
	"facilities":       {"facilities"},
	"accreditation":    {"accreditation"},
	"placement":        {"placement"},
	"description":      {"description"},
	"admissionProcess": {"admission_process"},
	"photo":            {"photo"},
	"isFeatured":       {"is_featured"},
	"createdBy":        {"created_by"},
	"createdAt":        {"created_at"},
	"updatedAt":        {"updated_at"},
}

var collegeSortFields = map[string]string{
	"name":        "name",
	"rating":      "rating",
	"established": "established",
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"updatedAt":   "updated_at",
	"city":        "city",
	"state":       "state",
	"type":        "type",
}

// filterKeyPattern matches "field[op]".
var filterKeyPattern = regexp.MustCompile(`^([A-Za-z_.]+)\[(gt|gte|lt|lte|in)\]$`)

// ParseCollegeQuery turns listing query parameters into a storage query.
// Unknown filter keys are ignored; malformed values, unknown select or
// sort fields are rejected.
func ParseCollegeQuery(values url.Values) (repositories.CollegeQuery, error) {
	q := repositories.CollegeQuery{
		Page:  positiveInt(values.Get("page"), defaultCollegePage),
		Limit: positiveInt(values.Get("limit"), defaultCollegeLimit),
	}
	if q.Limit > maxCollegeLimit {
		q.Limit = maxCollegeLimit
	}
	if q.Page > math.MaxInt32/q.Limit {
		return q, utils.Detail(utils.ErrInvalidInput, "page must be at most %d", math.MaxInt32/q.Limit)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, raw := range values[key] {
			switch key {
			case "select", "sort", "page", "limit":
				continue
			case "q":
				q.Search = strings.TrimSpace(raw)
				continue
			case "location":
				q.Location = strings.TrimSpace(raw)
				continue
			case "stream":
				q.Stream = strings.TrimSpace(raw)
				continue
			case "course":
				q.Course = strings.TrimSpace(raw)
				continue
			case "minRating":
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return q, utils.Detail(utils.ErrInvalidInput, "minRating must be a number")
				}
				q.MinRating = &v
				continue
			}

			name, op := key, repositories.OpEq
			if m := filterKeyPattern.FindStringSubmatch(key); m != nil {
				name, op = m[1], repositories.FilterOp(m[2])
			}
			field, ok := collegeFilterFields[name]
			if !ok {
				continue
			}

			parts := []string{raw}
			if op == repositories.OpIn {
				parts = strings.Split(raw, ",")
			}
			typed := make([]any, 0, len(parts))
			for _, p := range parts {
				v, err := convertFilterValue(field.kind, strings.TrimSpace(p))
				if err != nil {
					return q, utils.Detail(utils.ErrInvalidInput, "invalid value %q for %s", p, name)
				}
				typed = append(typed, v)
			}
			q.Filters = append(q.Filters, repositories.FieldFilter{Column: field.column, Op: op, Values: typed})
		}
	}

	if sel := strings.TrimSpace(values.Get("select")); sel != "" {
		columns := []string{"id"}
		seen := map[string]bool{"id": true}
		for _, name := range strings.Split(sel, ",") {
			name = strings.TrimSpace(name)
			if name == "" || name == "id" {
				continue
			}
			if name == "courses" {
				q.PreloadCourses = true
				continue
			}
			cols, ok := collegeSelectFields[name]
			if !ok {
				return q, utils.Detail(utils.ErrInvalidInput, "cannot select field %q", name)
			}
			for _, c := range cols {
				if !seen[c] {
					seen[c] = true
					columns = append(columns, c)
				}
			}
		}
		q.Columns = columns
	} else {
		q.PreloadCourses = true
	}

	sortParam := strings.TrimSpace(values.Get("sort"))
	if sortParam == "" {
		sortParam = "-createdAt"
	}
	for _, name := range strings.Split(sortParam, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		desc := strings.HasPrefix(name, "-")
		column, ok := collegeSortFields[strings.TrimPrefix(name, "-")]
		if !ok {
			return q, utils.Detail(utils.ErrInvalidInput, "cannot sort by %q", name)
		}
		q.Sort = append(q.Sort, repositories.SortField{Column: column, Desc: desc})
	}

	return q, nil
}

func convertFilterValue(kind fieldKind, raw string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindFloat:
		return strconv.ParseFloat(raw, 64)
	case kindBool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PageLinks builds the next/prev references for one page of a listing.
func PageLinks(page, limit int, total int64) utils.Pagination {
	var p utils.Pagination
	start := int64(page-1) * int64(limit)
	end := int64(page) * int64(limit)
	if end < total {
		p.Next = &utils.PageRef{Page: page + 1, Limit: limit}
	}
	if start > 0 {
		p.Prev = &utils.PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
