package services_test

import (
	"errors"
	"net/url"
	"testing"

	"edupath/internal/repositories"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

func TestParseCollegeQueryDefaults(t *testing.T) {
	q, err := services.ParseCollegeQuery(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("unexpected paging %d/%d", q.Page, q.Limit)
	}
	if len(q.Sort) != 1 || q.Sort[0].Column != "created_at" || !q.Sort[0].Desc {
		t.Fatalf("expected -createdAt default sort, got %+v", q.Sort)
	}
	if !q.PreloadCourses || len(q.Columns) != 0 {
		t.Fatal("expected full projection with courses")
	}
}

func TestParseCollegeQueryOperators(t *testing.T) {
	v := url.Values{}
	v.Set("rating[gte]", "4")
	v.Set("established[lt]", "2000")
	v.Set("type[in]", "IIT,NIT")
	v.Set("location.city", "Pune")
	v.Set("isFeatured", "true")
	v.Set("unknownField", "x")
	v.Set("limit", "500")
	v.Set("page", "-3")

	q, err := services.ParseCollegeQuery(v)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Limit != 100 || q.Page != 1 {
		t.Fatalf("unexpected paging %d/%d", q.Page, q.Limit)
	}

	byColumn := map[string]repositories.FieldFilter{}
	for _, f := range q.Filters {
		byColumn[f.Column] = f
	}
	if len(byColumn) != 5 {
		t.Fatalf("expected 5 filters, got %+v", q.Filters)
	}
	if f := byColumn["rating"]; f.Op != repositories.OpGte || f.Values[0] != 4.0 {
		t.Fatalf("unexpected rating filter %+v", f)
	}
	if f := byColumn["established"]; f.Op != repositories.OpLt || f.Values[0] != 2000 {
		t.Fatalf("unexpected established filter %+v", f)
	}
	if f := byColumn["type"]; f.Op != repositories.OpIn || len(f.Values) != 2 || f.Values[1] != "NIT" {
		t.Fatalf("unexpected type filter %+v", f)
	}
	if f := byColumn["city"]; f.Op != repositories.OpEq || f.Values[0] != "Pune" {
		t.Fatalf("unexpected city filter %+v", f)
	}
	if f := byColumn["is_featured"]; f.Values[0] != true {
		t.Fatalf("unexpected featured filter %+v", f)
	}
}

func TestParseCollegeQuerySelectAndSort(t *testing.T) {
	v := url.Values{}
	v.Set("select", "name,location,rating")
	v.Set("sort", "-rating,name")

	q, err := services.ParseCollegeQuery(v)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Columns[0] != "id" || len(q.Columns) != 1+1+7+1 {
		t.Fatalf("unexpected columns %v", q.Columns)
	}
	if q.PreloadCourses {
		t.Fatal("courses were not selected")
	}
	if len(q.Sort) != 2 || !q.Sort[0].Desc || q.Sort[1].Column != "name" || q.Sort[1].Desc {
		t.Fatalf("unexpected sort %+v", q.Sort)
	}
}

func TestParseCollegeQueryRejectsBadInput(t *testing.T) {
	cases := []url.Values{
		{"rating[gt]": {"high"}},
		{"select": {"password_hash"}},
		{"sort": {"-deleted_at"}},
		{"minRating": {"x"}},
		{"page": {"1000000000000000000"}, "limit": {"10"}},
		{"page": {"214748365"}},
	}
	for _, v := range cases {
		if _, err := services.ParseCollegeQuery(v); !errors.Is(err, utils.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %v, got %v", v, err)
		}
	}
}

func TestPageLinks(t *testing.T) {
	p := services.PageLinks(1, 10, 25)
	if p.Next == nil || p.Next.Page != 2 || p.Prev != nil {
		t.Fatalf("unexpected first page links %+v", p)
	}
	p = services.PageLinks(3, 10, 25)
	if p.Next != nil || p.Prev == nil || p.Prev.Page != 2 {
		t.Fatalf("unexpected last page links %+v", p)
	}
}

func TestParseCollegeQueryAcceptsLastAddressablePage(t *testing.T) {
	q, err := services.ParseCollegeQuery(url.Values{"page": {"214748364"}, "limit": {"10"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Offset() != 2147483630 {
		t.Fatalf("unexpected offset %d", q.Offset())
	}
	p := services.PageLinks(q.Page, q.Limit, 3)
	if p.Next != nil || p.Prev == nil || p.Prev.Page != 214748363 {
		t.Fatalf("unexpected links past the end %+v", p)
	}
}

func TestHaversineKm(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km
	d := services.HaversineKm(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Fatalf("unexpected distance %.1f", d)
	}
	if services.HaversineKm(10, 10, 10, 10) != 0 {
		t.Fatal("expected zero distance for the same point")
	}
}
