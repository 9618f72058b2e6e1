package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edupath/internal/models/db_models"
	"edupath/internal/models/request_models"
	"edupath/internal/repositories"
	"edupath/internal/services"
	"edupath/pkg/storage"
	"edupath/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&db_models.College{}, &db_models.CollegeCourse{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeEmbedder struct{ calls int }

func (f *fakeEmbedder) Embed(_ context.Context, text string) (pgvector.Vector, error) {
	f.calls++
	return pgvector.NewVector([]float32{float32(len(text)), 1}), nil
}

type fakeEmbeddingRepo struct {
	stored  map[uuid.UUID]string
	nearest []repositories.ScoredCollege
}

func (f *fakeEmbeddingRepo) Upsert(_ context.Context, e *db_models.CollegeEmbedding) error {
	f.stored[e.CollegeID] = e.Content
	return nil
}

func (f *fakeEmbeddingRepo) Nearest(_ context.Context, _ pgvector.Vector, _ float64, limit int) ([]repositories.ScoredCollege, error) {
	if len(f.nearest) > limit {
		return f.nearest[:limit], nil
	}
	return f.nearest, nil
}

func (f *fakeEmbeddingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.stored, id)
	return nil
}

type collegeFixture struct {
	svc      services.CollegeServiceInterface
	embedder *fakeEmbedder
	vectors  *fakeEmbeddingRepo
	blobs    *storage.FSStore
}

func newCollegeFixture(t *testing.T) collegeFixture {
	t.Helper()
	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	embedder := &fakeEmbedder{}
	vectors := &fakeEmbeddingRepo{stored: map[uuid.UUID]string{}}
	svc := services.NewCollegeService(
		repositories.NewCollegeRepository(newTestDB(t)),
		vectors, embedder, blobs, 1000, zap.NewNop(),
	)
	return collegeFixture{svc: svc, embedder: embedder, vectors: vectors, blobs: blobs}
}

func sampleCollege(name string, lng, lat float64) request_models.CollegeInput {
	return request_models.CollegeInput{
		Name: name,
		Location: request_models.LocationInput{
			Address: "1 Main Road", City: "Pune", State: "Maharashtra", Pincode: "411001",
			Coordinates: &request_models.GeoPoint{Coordinates: []float64{lng, lat}},
		},
		Type:        "Private",
		Established: 1985,
		Rating:      4.26,
		Facilities:  []string{"Library", "Hostel"},
		Courses: []request_models.CourseInput{{
			Name: "B.Sc. Computer Science", Level: "UG", Duration: "3 years",
			Stream: []string{"Science"}, Fees: request_models.FeesInput{Amount: 90000},
		}},
	}
}

func TestCreateCollegeValidatesAndIndexes(t *testing.T) {
	f := newCollegeFixture(t)
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}

	got, err := f.svc.CreateCollege(context.Background(), admin, sampleCollege("Pune Institute", 73.8567, 18.5204))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Rating != 4.3 {
		t.Fatalf("expected rating rounded to one decimal, got %v", got.Rating)
	}
	if got.Location.Country != "India" {
		t.Fatalf("expected default country, got %q", got.Location.Country)
	}
	if len(got.Courses) != 1 || got.Courses[0].Fees.Period != "per year" || got.Courses[0].Fees.Currency != "INR" {
		t.Fatalf("unexpected course defaults %+v", got.Courses)
	}
	if got.FullAddress != "1 Main Road, Pune, Maharashtra 411001, India" {
		t.Fatalf("unexpected full address %q", got.FullAddress)
	}
	if got.CreatedBy != admin.UserID.String() {
		t.Fatal("expected creator to be recorded")
	}
	if _, ok := f.vectors.stored[uuid.MustParse(got.ID)]; !ok {
		t.Fatal("expected college to be indexed")
	}

	bad := sampleCollege("", 0, 0)
	if _, err := f.svc.CreateCollege(context.Background(), admin, bad); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	bad = sampleCollege("X", 0, 0)
	bad.Type = "Spaceport"
	if _, err := f.svc.CreateCollege(context.Background(), admin, bad); err == nil || err.Error() != `Invalid college type "Spaceport"` {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestCreateCollegeValidationRules(t *testing.T) {
	f := newCollegeFixture(t)
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}
	ctx := context.Background()

	// 70 Devanagari characters take 210 bytes.
	long := strings.Repeat("विद", 23) + "य"
	if _, err := f.svc.CreateCollege(ctx, admin, sampleCollege(long, 73.85, 18.52)); err != nil {
		t.Fatalf("expected a 70 character name to pass, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(in *request_models.CollegeInput)
		want   string
	}{
		{"name too long", func(in *request_models.CollegeInput) { in.Name = strings.Repeat("न", 201) },
			"College name cannot be more than 200 characters"},
		{"missing city", func(in *request_models.CollegeInput) { in.Location.City = "  " },
			"Location address, city and state are required"},
		{"rating", func(in *request_models.CollegeInput) { in.Rating = 5.5 }, "Rating must be between 0 and 5"},
		{"established", func(in *request_models.CollegeInput) { in.Established = 1700 }, "Establishment year seems incorrect"},
		{"future", func(in *request_models.CollegeInput) { in.Established = 3000 }, "Establishment year cannot be in the future"},
		{"email", func(in *request_models.CollegeInput) { in.Contact.Email = "not-an-email" }, "Please provide a valid email"},
		{"website", func(in *request_models.CollegeInput) { in.Contact.Website = "pune college" }, "Please provide a valid website URL"},
		{"facility", func(in *request_models.CollegeInput) { in.Facilities = []string{"Library", "Helipad"} }, `Unknown facility "Helipad"`},
		{"accreditation", func(in *request_models.CollegeInput) {
			in.Accreditation = []db_models.Accreditation{{Name: "XYZ"}}
		}, `Unknown accreditation "XYZ"`},
		{"description", func(in *request_models.CollegeInput) { in.AdmissionProcess = strings.Repeat("a", 1001) },
			"Admission process cannot be more than 1000 characters"},
		{"course level", func(in *request_models.CollegeInput) { in.Courses[0].Level = "Kindergarten" }, `Invalid course level "Kindergarten"`},
		{"course stream", func(in *request_models.CollegeInput) { in.Courses[0].Stream = []string{"Astrology"} }, `Invalid course stream "Astrology"`},
		{"course fee", func(in *request_models.CollegeInput) { in.Courses[0].Fees.Amount = -1 }, "Course fee cannot be negative"},
		{"fee period", func(in *request_models.CollegeInput) { in.Courses[0].Fees.Period = "weekly" }, `Invalid fee period "weekly"`},
	}
	for _, tc := range cases {
		in := sampleCollege("Validation College", 73.85, 18.52)
		tc.mutate(&in)
		_, err := f.svc.CreateCollege(ctx, admin, in)
		if !errors.Is(err, utils.ErrInvalidInput) || err.Error() != tc.want {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateAndDeleteRequireOwnerOrAdmin(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	owner := services.Actor{UserID: uuid.New(), Role: db_models.RoleStudent}
	stranger := services.Actor{UserID: uuid.New(), Role: db_models.RoleStudent}
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}

	created, err := f.svc.CreateCollege(ctx, owner, sampleCollege("Owner College", 73.8, 18.5))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.UpdateCollege(ctx, stranger, created.ID, []byte(`{"name":"Hijacked"}`)); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := f.svc.UpdateCollege(ctx, owner, created.ID, []byte(`{"name":"Renamed","location":{"city":"Mumbai"}}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Location.City != "Mumbai" || updated.Location.Address != "1 Main Road" {
		t.Fatalf("expected merge update, got %+v", updated)
	}
	if updated.Type != "Private" || updated.Established != 1985 {
		t.Fatal("fields absent from the patch must be kept")
	}

	if err := f.svc.DeleteCollege(ctx, stranger, created.ID); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if err := f.svc.DeleteCollege(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := f.svc.GetCollege(ctx, created.ID); !errors.Is(err, utils.ErrCollegeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := f.svc.GetCollege(ctx, "garbage"); !errors.Is(err, utils.ErrCollegeNotFound) {
		t.Fatalf("expected malformed id to be not found, got %v", err)
	}
}

func TestCollegeListingThroughService(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}
	for i := 0; i < 3; i++ {
		if _, err := f.svc.CreateCollege(ctx, admin, sampleCollege(fmt.Sprintf("College %d", i), 73.8, 18.5)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := f.svc.ListColleges(ctx, url.Values{"limit": {"2"}, "sort": {"name"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Colleges) != 2 || page.Colleges[0].Name != "College 0" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Pagination.Next == nil || page.Pagination.Prev != nil {
		t.Fatalf("unexpected pagination %+v", page.Pagination)
	}
	if len(page.Colleges[0].Courses) != 1 {
		t.Fatal("expected courses embedded in listing")
	}
}

func TestCollegesInRadius(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}

	_, _ = f.svc.CreateCollege(ctx, admin, sampleCollege("Pune Central", 73.8567, 18.5204))
	_, _ = f.svc.CreateCollege(ctx, admin, sampleCollege("Pune Outskirts", 73.95, 18.60))
	_, _ = f.svc.CreateCollege(ctx, admin, sampleCollege("Delhi Far", 77.2090, 28.6139))

	got, err := f.svc.CollegesInRadius(ctx, 18.5204, 73.8567, 25)
	if err != nil {
		t.Fatalf("radius: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Pune Central" || *got[0].DistanceKm != 0 {
		t.Fatalf("unexpected radius result %+v", got)
	}

	if _, err := f.svc.CollegesInRadius(ctx, 18.5, 73.8, -1); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid distance, got %v", err)
	}
}

func multipartFile(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, name)}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(body)
	_ = w.Close()

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestUploadPhoto(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	owner := services.Actor{UserID: uuid.New(), Role: db_models.RoleStudent}
	created, _ := f.svc.CreateCollege(ctx, owner, sampleCollege("Photo College", 73.8, 18.5))

	name, err := f.svc.UploadPhoto(ctx, owner, created.ID, multipartFile(t, "campus.JPG", "image/jpeg", []byte("jpeg-bytes")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if name != "photo_"+created.ID+".jpg" {
		t.Fatalf("unexpected file name %q", name)
	}
	if _, err := os.Stat(filepath.Join(f.blobs.Dir(), name)); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
	got, _ := f.svc.GetCollege(ctx, created.ID)
	if got.Photo != name {
		t.Fatalf("expected photo on college, got %q", got.Photo)
	}

	if _, err := f.svc.UploadPhoto(ctx, owner, created.ID, multipartFile(t, "doc.pdf", "application/pdf", []byte("x"))); !errors.Is(err, utils.ErrInvalidUpload) {
		t.Fatalf("expected non-image rejection, got %v", err)
	}
	if _, err := f.svc.UploadPhoto(ctx, owner, created.ID, multipartFile(t, "big.png", "image/png", make([]byte, 2000))); !errors.Is(err, utils.ErrInvalidUpload) {
		t.Fatalf("expected size rejection, got %v", err)
	}
	if _, err := f.svc.UploadPhoto(ctx, owner, created.ID, nil); err == nil || err.Error() != "Please upload a file" {
		t.Fatalf("expected missing file message, got %v", err)
	}
}

func TestCourseLifecycle(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	owner := services.Actor{UserID: uuid.New(), Role: db_models.RoleStudent}
	stranger := services.Actor{UserID: uuid.New(), Role: db_models.RoleStudent}
	created, _ := f.svc.CreateCollege(ctx, owner, sampleCollege("Course College", 73.8, 18.5))

	course, err := f.svc.AddCourse(ctx, owner, created.ID, request_models.CourseInput{
		Name: "BBA", Level: "UG", Duration: "3 years", Stream: []string{"Management"},
		Fees: request_models.FeesInput{Amount: 120000, Period: "total"},
	})
	if err != nil {
		t.Fatalf("add course: %v", err)
	}

	if _, err := f.svc.AddCourse(ctx, stranger, created.ID, request_models.CourseInput{}); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := f.svc.UpdateCourse(ctx, owner, created.ID, course.ID, []byte(`{"duration":"4 years"}`))
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if updated.Duration != "4 years" || updated.Name != "BBA" || updated.Fees.Period != "total" {
		t.Fatalf("unexpected updated course %+v", updated)
	}

	list, _ := f.svc.ListCourses(ctx, created.ID)
	if len(list) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(list))
	}

	if err := f.svc.DeleteCourse(ctx, owner, created.ID, course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	if _, err := f.svc.GetCourse(ctx, created.ID, course.ID); !errors.Is(err, utils.ErrCourseNotFound) {
		t.Fatalf("expected course not found, got %v", err)
	}
	if _, err := f.svc.ListCourses(ctx, uuid.NewString()); !errors.Is(err, utils.ErrCollegeNotFound) {
		t.Fatalf("expected college not found, got %v", err)
	}
}

func TestSemanticSearch(t *testing.T) {
	f := newCollegeFixture(t)
	ctx := context.Background()
	admin := services.Actor{UserID: uuid.New(), Role: db_models.RoleAdmin}
	a, _ := f.svc.CreateCollege(ctx, admin, sampleCollege("Alpha", 73.8, 18.5))
	b, _ := f.svc.CreateCollege(ctx, admin, sampleCollege("Beta", 73.8, 18.5))

	f.vectors.nearest = []repositories.ScoredCollege{
		{CollegeID: uuid.MustParse(b.ID), Similarity: 0.91},
		{CollegeID: uuid.MustParse(a.ID), Similarity: 0.72},
		{CollegeID: uuid.New(), Similarity: 0.70},
	}

	got, err := f.svc.SemanticSearch(ctx, "computer science in pune", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Beta" || *got[0].Similarity != 0.91 {
		t.Fatalf("unexpected results %+v", got)
	}

	disabled := services.NewCollegeService(repositories.NewCollegeRepository(newTestDB(t)), nil, nil, f.blobs, 0, zap.NewNop())
	if _, err := disabled.SemanticSearch(ctx, "x", 5); !errors.Is(err, utils.ErrSemanticSearchDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}
