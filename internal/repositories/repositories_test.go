package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edupath/internal/models/db_models"
	"edupath/internal/repositories"
	"edupath/internal/scoring"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.QuizResult{},
		&db_models.AccountQuizHistory{},
		&db_models.College{},
		&db_models.CollegeCourse{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newResult(userID uuid.UUID, stream string, at time.Time) *db_models.QuizResult {
	return &db_models.QuizResult{
		UserID:          userID,
		Stream:          stream,
		Scores:          datatypes.NewJSONType(scoring.ScoreBoard{Science: 1}),
		Answers:         datatypes.NewJSONType([]scoring.NormalizedAnswer{}),
		Recommendations: datatypes.NewJSONType(scoring.RecommendationsFor(stream)),
		CompletedAt:     at,
	}
}

func TestQuizResultCreateAndAppendInOneTransaction(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewQuizResultRepository(newTestDB(t))
	user := uuid.New()

	var created uuid.UUID
	err := repo.WithTx(ctx, func(tx repositories.QuizResultRepository) error {
		id, err := tx.Create(ctx, newResult(user, "science", time.Now().UTC()))
		if err != nil {
			return err
		}
		created = id
		return tx.AppendToHistory(ctx, user, id)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	ids, err := repo.HistoryIDs(ctx, user)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(ids) != 1 || ids[0] != created {
		t.Fatalf("unexpected history %v", ids)
	}

	got, err := repo.FindByIDForUser(ctx, user, created)
	if err != nil || got == nil {
		t.Fatalf("find: %v %v", got, err)
	}
	if got.Recommendations.Data().Careers[0].Title != "Engineer" {
		t.Fatalf("recommendations not persisted: %+v", got.Recommendations.Data())
	}
}

func TestQuizResultRollbackLeavesNothing(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewQuizResultRepository(newTestDB(t))
	user := uuid.New()

	err := repo.WithTx(ctx, func(tx repositories.QuizResultRepository) error {
		if _, err := tx.Create(ctx, newResult(user, "arts", time.Now().UTC())); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	results, _ := repo.ListByUser(ctx, user)
	if len(results) != 0 {
		t.Fatalf("expected rollback, found %d results", len(results))
	}
}

func TestQuizResultListIsNewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewQuizResultRepository(newTestDB(t))
	user, other := uuid.New(), uuid.New()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, stream := range []string{"science", "arts", "commerce"} {
		if _, err := repo.Create(ctx, newResult(user, stream, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	foreignID, _ := repo.Create(ctx, newResult(other, "vocational", base))

	first, err := repo.ListByUser(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 3 || first[0].Stream != "commerce" || first[2].Stream != "science" {
		t.Fatalf("unexpected order: %v", streams(first))
	}

	second, _ := repo.ListByUser(ctx, user)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("expected identical order across reads")
		}
	}

	if got, err := repo.FindByIDForUser(ctx, user, foreignID); err != nil || got != nil {
		t.Fatalf("expected foreign result to be hidden, got %v %v", got, err)
	}
}

func streams(rs []db_models.QuizResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Stream
	}
	return out
}

func TestAccountRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAccountRepository(newTestDB(t))

	a := &db_models.Account{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	if err := repo.Insert(ctx, a); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.Role != db_models.RoleStudent {
		t.Fatalf("expected default role, got %q", a.Role)
	}

	dup := &db_models.Account{Name: "Other", Email: "asha@example.com", PasswordHash: "y"}
	if err := repo.Insert(ctx, dup); err == nil {
		t.Fatal("expected duplicate email to fail")
	}

	found, err := repo.FindByEmail(ctx, "asha@example.com")
	if err != nil || found == nil || found.ID != a.ID {
		t.Fatalf("find by email: %v %v", found, err)
	}
	missing, err := repo.FindById(ctx, uuid.NewString())
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for missing account, got %v %v", missing, err)
	}
}

func seedColleges(t *testing.T, repo repositories.CollegeRepository) []*db_models.College {
	t.Helper()
	ctx := context.Background()
	lat, lng := 28.6139, 77.2090
	colleges := []*db_models.College{
		{
			Name: "Delhi Science College", City: "New Delhi", State: "Delhi", Type: "Government",
			Established: 1950, Rating: 4.5, Latitude: &lat, Longitude: &lng,
			BaseModel: db_models.BaseModel{CreatedAt: 100},
			Courses: []db_models.CollegeCourse{{
				Name: "B.Sc. Physics", Level: "UG", Duration: "3 years",
				Streams: datatypes.NewJSONType([]string{"Science"}), FeeAmount: 20000,
			}},
		},
		{
			Name: "Mumbai Commerce Institute", City: "Mumbai", State: "Maharashtra", Type: "Private",
			Established: 1990, Rating: 3.9,
			BaseModel: db_models.BaseModel{CreatedAt: 200},
			Courses: []db_models.CollegeCourse{{
				Name: "B.Com", Level: "UG", Duration: "3 years",
				Streams: datatypes.NewJSONType([]string{"Commerce"}), FeeAmount: 50000,
			}},
		},
		{
			Name: "Chennai Arts Academy", City: "Chennai", State: "Tamil Nadu", Type: "Private",
			Established: 2005, Rating: 4.1,
			BaseModel: db_models.BaseModel{CreatedAt: 300},
		},
	}
	for _, c := range colleges {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create college: %v", err)
		}
	}
	return colleges
}

func names(cs []db_models.College) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestCollegeListFiltersSortAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCollegeRepository(newTestDB(t))
	seedColleges(t, repo)

	minRating := 4.0
	cases := []struct {
		name  string
		query repositories.CollegeQuery
		want  []string
		total int64
	}{
		{
			name:  "default newest first",
			query: repositories.CollegeQuery{Sort: []repositories.SortField{{Column: "created_at", Desc: true}}, Page: 1, Limit: 10},
			want:  []string{"Chennai Arts Academy", "Mumbai Commerce Institute", "Delhi Science College"},
			total: 3,
		},
		{
			name: "rating gte",
			query: repositories.CollegeQuery{
				Filters: []repositories.FieldFilter{{Column: "rating", Op: repositories.OpGte, Values: []any{4.1}}},
				Sort:    []repositories.SortField{{Column: "rating", Desc: true}}, Page: 1, Limit: 10,
			},
			want:  []string{"Delhi Science College", "Chennai Arts Academy"},
			total: 2,
		},
		{
			name: "type in",
			query: repositories.CollegeQuery{
				Filters: []repositories.FieldFilter{{Column: "type", Op: repositories.OpIn, Values: []any{"Government", "Other"}}},
				Page:    1, Limit: 10,
			},
			want:  []string{"Delhi Science College"},
			total: 1,
		},
		{
			name:  "stream via courses",
			query: repositories.CollegeQuery{Stream: "commerce", Page: 1, Limit: 10},
			want:  []string{"Mumbai Commerce Institute"},
			total: 1,
		},
		{
			name:  "course name and min rating",
			query: repositories.CollegeQuery{Course: "physics", MinRating: &minRating, Page: 1, Limit: 10},
			want:  []string{"Delhi Science College"},
			total: 1,
		},
		{
			name:  "free text search",
			query: repositories.CollegeQuery{Search: "tamil", Page: 1, Limit: 10},
			want:  []string{"Chennai Arts Academy"},
			total: 1,
		},
		{
			name:  "second page",
			query: repositories.CollegeQuery{Sort: []repositories.SortField{{Column: "name"}}, Page: 2, Limit: 2},
			want:  []string{"Mumbai Commerce Institute"},
			total: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tc.query)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != tc.total {
				t.Fatalf("expected total %d, got %d", tc.total, total)
			}
			if fmt.Sprint(names(got)) != fmt.Sprint(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, names(got))
			}
		})
	}
}

func TestCollegeListSelectAndPreload(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCollegeRepository(newTestDB(t))
	seedColleges(t, repo)

	got, _, err := repo.List(ctx, repositories.CollegeQuery{
		Columns: []string{"id", "name"},
		Sort:    []repositories.SortField{{Column: "name"}},
		Page:    1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].City != "" || got[0].Name == "" {
		t.Fatalf("expected only selected columns, got %+v", got[0])
	}

	withCourses, _, err := repo.List(ctx, repositories.CollegeQuery{PreloadCourses: true, Stream: "science", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(withCourses) != 1 || len(withCourses[0].Courses) != 1 {
		t.Fatalf("expected preloaded course, got %+v", withCourses)
	}
}

func TestCollegeCoursesAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCollegeRepository(newTestDB(t))
	colleges := seedColleges(t, repo)
	chennai := colleges[2]

	course := &db_models.CollegeCourse{CollegeID: chennai.ID, Name: "B.A. History", Level: "UG", Duration: "3 years"}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.FeeCurrency != "INR" && course.FeeCurrency != "" {
		t.Fatalf("unexpected currency %q", course.FeeCurrency)
	}

	found, err := repo.FindCourse(ctx, chennai.ID, course.ID)
	if err != nil || found == nil {
		t.Fatalf("find course: %v %v", found, err)
	}
	if other, _ := repo.FindCourse(ctx, colleges[0].ID, course.ID); other != nil {
		t.Fatal("course must be scoped to its college")
	}

	if err := repo.DeleteCourse(ctx, colleges[0].ID, course.ID); err == nil {
		t.Fatal("expected not found when deleting through the wrong college")
	}

	if err := repo.Delete(ctx, colleges[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c, _ := repo.FindByID(ctx, colleges[0].ID); c != nil {
		t.Fatal("expected college to be gone")
	}
	courses, _ := repo.ListCourses(ctx, colleges[0].ID)
	if len(courses) != 0 {
		t.Fatalf("expected courses removed with college, got %d", len(courses))
	}
}

func TestCollegeWithinBounds(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCollegeRepository(newTestDB(t))
	seedColleges(t, repo)

	got, err := repo.WithinBounds(ctx, 28, 29, 77, 78)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Delhi Science College" {
		t.Fatalf("unexpected colleges %v", names(got))
	}
}
