package repositories

import (
	"strings"

	"gorm.io/gorm"
)

type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

var sqlOps = map[FilterOp]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// FieldFilter compares a whitelisted column. Values are already typed.
type FieldFilter struct {
	Column string
	Op     FilterOp
	Values []any
}

type SortField struct {
	Column string
	Desc   bool
}

// CollegeQuery is the storage-level form of a college listing request.
// Columns in it have been checked against a whitelist by the caller.
type CollegeQuery struct {
	Filters   []FieldFilter
	Search    string
	Location  string
	Stream    string
	Course    string
	MinRating *float64

	// Columns restricts the selected columns; empty selects all.
	Columns        []string
	PreloadCourses bool

	Sort  []SortField
	Page  int
	Limit int
}

func (q CollegeQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// filterScope applies every condition that narrows the result set. It is
// shared by the page query and the total count.
func (q CollegeQuery) filterScope(db *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		if f.Op == OpIn {
			db = db.Where(f.Column+" IN ?", f.Values)
			continue
		}
		db = db.Where(f.Column+" "+sqlOps[f.Op]+" ?", f.Values[0])
	}

	if q.Search != "" {
		p := likePattern(q.Search)
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?)", p, p, p)
	}
	if q.Location != "" {
		db = db.Where("LOWER(city) LIKE ?", likePattern(q.Location))
	}
	if q.Stream != "" {
		db = db.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table("college_courses").
			Select("college_id").
			Where("deleted_at IS NULL AND LOWER(CAST(streams AS TEXT)) LIKE ?", likePattern(q.Stream)))
	}
	if q.Course != "" {
		db = db.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table("college_courses").
			Select("college_id").
			Where("deleted_at IS NULL AND LOWER(name) LIKE ?", likePattern(q.Course)))
	}
	if q.MinRating != nil {
		db = db.Where("rating >= ?", *q.MinRating)
	}
	return db
}

func (q CollegeQuery) pageScope(db *gorm.DB) *gorm.DB {
	if len(q.Columns) > 0 {
		db = db.Select(q.Columns)
	}
	for _, s := range q.Sort {
		if s.Desc {
			db = db.Order(s.Column + " DESC")
		} else {
			db = db.Order(s.Column + " ASC")
		}
	}
	db = db.Order("id ASC")
	if q.PreloadCourses {
		db = db.Preload("Courses", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		})
	}
	return db.Offset(q.Offset()).Limit(q.Limit)
}
