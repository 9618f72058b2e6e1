package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edupath/internal/models/db_models"
	"edupath/internal/models/request_models"
	"edupath/internal/models/response_models"
	"edupath/internal/repositories"
	"edupath/pkg/storage"
	"edupath/pkg/utils"
)

const (
	earthRadiusKm         = 6378.0
	minSemanticSimilarity = 0.5
	defaultSemanticLimit  = 10
	maxSemanticLimit      = 50
	embeddingTimeout      = 10 * time.Second
)

// Actor is the authenticated caller of a write operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// CanModify reports whether the actor created the record or is an admin.
func (a Actor) CanModify(createdBy *uuid.UUID) bool {
	if a.Role == db_models.RoleAdmin {
		return true
	}
	return createdBy != nil && *createdBy == a.UserID
}

type CollegePage struct {
	Colleges   []response_models.CollegeResponse
	Total      int64
	Pagination utils.Pagination
}

type CollegeServiceInterface interface {
	ListColleges(ctx context.Context, query url.Values) (*CollegePage, error)
	GetCollege(ctx context.Context, id string) (*response_models.CollegeResponse, error)
	CreateCollege(ctx context.Context, actor Actor, input request_models.CollegeInput) (*response_models.CollegeResponse, error)
	UpdateCollege(ctx context.Context, actor Actor, id string, patch []byte) (*response_models.CollegeResponse, error)
	DeleteCollege(ctx context.Context, actor Actor, id string) error
	CollegesInRadius(ctx context.Context, lat, lng, distanceKm float64) ([]response_models.CollegeResponse, error)
	UploadPhoto(ctx context.Context, actor Actor, id string, file *multipart.FileHeader) (string, error)
	SemanticSearch(ctx context.Context, query string, limit int) ([]response_models.CollegeResponse, error)

	ListCourses(ctx context.Context, collegeID string) ([]response_models.CourseResponse, error)
	GetCourse(ctx context.Context, collegeID, courseID string) (*response_models.CourseResponse, error)
	AddCourse(ctx context.Context, actor Actor, collegeID string, input request_models.CourseInput) (*response_models.CourseResponse, error)
	UpdateCourse(ctx context.Context, actor Actor, collegeID, courseID string, patch []byte) (*response_models.CourseResponse, error)
	DeleteCourse(ctx context.Context, actor Actor, collegeID, courseID string) error
}

type CollegeService struct {
	collegeRepo    repositories.CollegeRepository
	embeddingRepo  repositories.CollegeEmbeddingRepository
	embedder       utils.Embedder
	blobs          storage.BlobStore
	maxUploadBytes int64
	log            *zap.Logger
}

// NewCollegeService takes a nil embedder or embedding repository when
// semantic search is not available.
func NewCollegeService(
	collegeRepo repositories.CollegeRepository,
	embeddingRepo repositories.CollegeEmbeddingRepository,
	embedder utils.Embedder,
	blobs storage.BlobStore,
	maxUploadBytes int64,
	log *zap.Logger,
) CollegeServiceInterface {
	return &CollegeService{
		collegeRepo:    collegeRepo,
		embeddingRepo:  embeddingRepo,
		embedder:       embedder,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (s *CollegeService) ListColleges(ctx context.Context, query url.Values) (*CollegePage, error) {
	q, err := ParseCollegeQuery(query)
	if err != nil {
		return nil, err
	}

	colleges, total, err := s.collegeRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return &CollegePage{
		Colleges:   response_models.ToCollegeResponses(colleges),
		Total:      total,
		Pagination: PageLinks(q.Page, q.Limit, total),
	}, nil
}

func (s *CollegeService) GetCollege(ctx context.Context, id string) (*response_models.CollegeResponse, error) {
	college, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.ToCollegeResponse(college)
	return &resp, nil
}

func (s *CollegeService) CreateCollege(ctx context.Context, actor Actor, input request_models.CollegeInput) (*response_models.CollegeResponse, error) {
	if err := normalizeCollege(&input); err != nil {
		return nil, err
	}

	college := &db_models.College{}
	applyCollegeInput(college, input)
	for _, c := range input.Courses {
		college.Courses = append(college.Courses, courseFromInput(uuid.Nil, c))
	}
	if actor.UserID != uuid.Nil {
		creator := actor.UserID
		college.CreatedBy = &creator
		college.UpdatedBy = &creator
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.log.Info("College created", zap.String("college_id", college.ID.String()), zap.String("user_id", actor.UserID.String()))

	s.index(ctx, college)
	resp := response_models.ToCollegeResponse(college)
	return &resp, nil
}

// UpdateCollege decodes patch over the current state, so fields missing
// from the patch keep their values. Courses are changed through the
// course operations only.
func (s *CollegeService) UpdateCollege(ctx context.Context, actor Actor, id string, patch []byte) (*response_models.CollegeResponse, error) {
	college, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(college.CreatedBy) {
		return nil, utils.ErrForbidden
	}

	input := collegeToInput(college)
	if err := json.NewDecoder(bytes.NewReader(patch)).Decode(&input); err != nil {
		return nil, invalid("Invalid college payload: %v", err)
	}
	input.Courses = nil
	if err := normalizeCollege(&input); err != nil {
		return nil, err
	}

	applyCollegeInput(college, input)
	updater := actor.UserID
	college.UpdatedBy = &updater

	if err := s.collegeRepo.Update(ctx, college); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.index(ctx, college)
	resp := response_models.ToCollegeResponse(college)
	return &resp, nil
}

func (s *CollegeService) DeleteCollege(ctx context.Context, actor Actor, id string) error {
	college, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(college.CreatedBy) {
		return utils.ErrForbidden
	}

	if err := s.collegeRepo.Delete(ctx, college.ID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if s.embeddingRepo != nil {
		if err := s.embeddingRepo.Delete(ctx, college.ID); err != nil {
			s.log.Warn("Failed to delete college embedding", zap.String("college_id", id), zap.Error(err))
		}
	}
	s.log.Info("College deleted", zap.String("college_id", id), zap.String("user_id", actor.UserID.String()))
	return nil
}

// CollegesInRadius narrows candidates with a bounding box in the database and
// then keeps those within distanceKm by great-circle distance, nearest first.
func (s *CollegeService) CollegesInRadius(ctx context.Context, lat, lng, distanceKm float64) ([]response_models.CollegeResponse, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, invalid("Coordinates are out of range")
	}
	if distanceKm <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return nil, invalid("Distance must be a positive number of kilometres")
	}

	dLat := distanceKm / earthRadiusKm * 180 / math.Pi
	minLat, maxLat := math.Max(lat-dLat, -90), math.Min(lat+dLat, 90)
	minLng, maxLng := -180.0, 180.0
	if cos := math.Cos(lat * math.Pi / 180); cos > 1e-6 {
		dLng := dLat / cos
		if dLng < 180 {
			minLng, maxLng = lng-dLng, lng+dLng
		}
	}

	var candidates []db_models.College
	if minLng < -180 || maxLng > 180 {
		// box wraps the antimeridian; filter on latitude only
		all, err := s.collegeRepo.WithinBounds(ctx, minLat, maxLat, -180, 180)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		candidates = all
	} else {
		box, err := s.collegeRepo.WithinBounds(ctx, minLat, maxLat, minLng, maxLng)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		candidates = box
	}

	type hit struct {
		college  *db_models.College
		distance float64
	}
	hits := make([]hit, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.Latitude == nil || c.Longitude == nil {
			continue
		}
		d := HaversineKm(lat, lng, *c.Latitude, *c.Longitude)
		if d <= distanceKm {
			hits = append(hits, hit{college: c, distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	out := make([]response_models.CollegeResponse, 0, len(hits))
	for _, h := range hits {
		resp := response_models.ToCollegeResponse(h.college)
		d := math.Round(h.distance*100) / 100
		resp.DistanceKm = &d
		out = append(out, resp)
	}
	return out, nil
}

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

func (s *CollegeService) UploadPhoto(ctx context.Context, actor Actor, id string, file *multipart.FileHeader) (string, error) {
	college, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	if !actor.CanModify(college.CreatedBy) {
		return "", utils.ErrForbidden
	}

	if file == nil {
		return "", utils.Detail(utils.ErrInvalidUpload, "Please upload a file")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return "", utils.Detail(utils.ErrInvalidUpload, "Please upload an image file")
	}
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return "", utils.Detail(utils.ErrInvalidUpload, "Please upload an image less than %d", s.maxUploadBytes)
	}

	name := fmt.Sprintf("photo_%s%s", college.ID, strings.ToLower(filepath.Ext(file.Filename)))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if _, err := s.blobs.Put(name, src); err != nil {
		s.log.Error("Problem with file upload", zap.String("college_id", id), zap.Error(err))
		return "", fmt.Errorf("store upload: %w", err)
	}

	if err := s.collegeRepo.UpdatePhoto(ctx, college.ID, name); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return name, nil
}

func (s *CollegeService) SemanticSearch(ctx context.Context, query string, limit int) ([]response_models.CollegeResponse, error) {
	if s.embedder == nil || s.embeddingRepo == nil {
		return nil, utils.ErrSemanticSearchDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("Search query is required")
	}
	if limit <= 0 {
		limit = defaultSemanticLimit
	}
	if limit > maxSemanticLimit {
		limit = maxSemanticLimit
	}

	embedCtx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()
	vector, err := s.embedder.Embed(embedCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.embeddingRepo.Nearest(ctx, vector, minSemanticSimilarity, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	ids := make([]uuid.UUID, 0, len(scored))
	for _, sc := range scored {
		ids = append(ids, sc.CollegeID)
	}
	colleges, err := s.collegeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	byID := make(map[uuid.UUID]*db_models.College, len(colleges))
	for i := range colleges {
		byID[colleges[i].ID] = &colleges[i]
	}

	out := make([]response_models.CollegeResponse, 0, len(scored))
	for _, sc := range scored {
		c, ok := byID[sc.CollegeID]
		if !ok {
			continue
		}
		resp := response_models.ToCollegeResponse(c)
		sim := sc.Similarity
		resp.Similarity = &sim
		out = append(out, resp)
	}
	return out, nil
}

func (s *CollegeService) ListCourses(ctx context.Context, collegeID string) ([]response_models.CourseResponse, error) {
	college, err := s.find(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	return response_models.ToCourseResponses(college.Courses), nil
}

func (s *CollegeService) GetCourse(ctx context.Context, collegeID, courseID string) (*response_models.CourseResponse, error) {
	college, err := s.find(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	course, err := s.findCourse(ctx, college.ID, courseID)
	if err != nil {
		return nil, err
	}
	resp := response_models.ToCourseResponse(course)
	return &resp, nil
}

func (s *CollegeService) AddCourse(ctx context.Context, actor Actor, collegeID string, input request_models.CourseInput) (*response_models.CourseResponse, error) {
	college, err := s.find(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(college.CreatedBy) {
		return nil, utils.ErrForbidden
	}
	if err := normalizeCourse(&input); err != nil {
		return nil, err
	}

	course := courseFromInput(college.ID, input)
	if err := s.collegeRepo.CreateCourse(ctx, &course); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	college.Courses = append(college.Courses, course)
	s.index(ctx, college)

	resp := response_models.ToCourseResponse(&course)
	return &resp, nil
}

func (s *CollegeService) UpdateCourse(ctx context.Context, actor Actor, collegeID, courseID string, patch []byte) (*response_models.CourseResponse, error) {
	college, err := s.find(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(college.CreatedBy) {
		return nil, utils.ErrForbidden
	}
	course, err := s.findCourse(ctx, college.ID, courseID)
	if err != nil {
		return nil, err
	}

	input := courseToInput(course)
	if err := json.NewDecoder(bytes.NewReader(patch)).Decode(&input); err != nil {
		return nil, invalid("Invalid course payload: %v", err)
	}
	if err := normalizeCourse(&input); err != nil {
		return nil, err
	}

	updated := courseFromInput(college.ID, input)
	updated.BaseModel = course.BaseModel
	if err := s.collegeRepo.UpdateCourse(ctx, &updated); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	for i := range college.Courses {
		if college.Courses[i].ID == updated.ID {
			college.Courses[i] = updated
		}
	}
	s.index(ctx, college)

	resp := response_models.ToCourseResponse(&updated)
	return &resp, nil
}

func (s *CollegeService) DeleteCourse(ctx context.Context, actor Actor, collegeID, courseID string) error {
	college, err := s.find(ctx, collegeID)
	if err != nil {
		return err
	}
	if !actor.CanModify(college.CreatedBy) {
		return utils.ErrForbidden
	}
	id, err := uuid.Parse(courseID)
	if err != nil {
		return utils.ErrCourseNotFound
	}

	if err := s.collegeRepo.DeleteCourse(ctx, college.ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrCourseNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	kept := college.Courses[:0]
	for _, c := range college.Courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	college.Courses = kept
	s.index(ctx, college)
	return nil
}

// find treats a malformed id like a missing college.
func (s *CollegeService) find(ctx context.Context, id string) (*db_models.College, error) {
	collegeID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrCollegeNotFound
	}
	college, err := s.collegeRepo.FindByID(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if college == nil {
		return nil, utils.ErrCollegeNotFound
	}
	return college, nil
}

func (s *CollegeService) findCourse(ctx context.Context, collegeID uuid.UUID, courseID string) (*db_models.CollegeCourse, error) {
	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, utils.ErrCourseNotFound
	}
	course, err := s.collegeRepo.FindCourse(ctx, collegeID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}
	return course, nil
}

// index refreshes the college's embedding. Failures only cost search
// freshness, so they are logged and not returned.
func (s *CollegeService) index(ctx context.Context, college *db_models.College) {
	if s.embedder == nil || s.embeddingRepo == nil {
		return
	}
	content := EmbeddingContent(college)

	embedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), embeddingTimeout)
	defer cancel()

	vector, err := s.embedder.Embed(embedCtx, content)
	if err != nil {
		s.log.Warn("Failed to embed college", zap.String("college_id", college.ID.String()), zap.Error(err))
		return
	}
	if err := s.embeddingRepo.Upsert(embedCtx, &db_models.CollegeEmbedding{
		CollegeID: college.ID,
		Content:   content,
		Embedding: vector,
	}); err != nil {
		s.log.Warn("Failed to store college embedding", zap.String("college_id", college.ID.String()), zap.Error(err))
	}
}

// EmbeddingContent is the text a college is indexed under.
func EmbeddingContent(c *db_models.College) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %s college in %s, %s.", c.Name, c.Type, c.City, c.State)
	if len(c.Courses) > 0 {
		names := make([]string, 0, len(c.Courses))
		for _, course := range c.Courses {
			names = append(names, fmt.Sprintf("%s (%s; %s)", course.Name, course.Level, strings.Join(course.Streams.Data(), ", ")))
		}
		b.WriteString(" Courses: ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(".")
	}
	if f := c.Facilities.Data(); len(f) > 0 {
		b.WriteString(" Facilities: ")
		b.WriteString(strings.Join(f, ", "))
		b.WriteString(".")
	}
	if c.Description != "" {
		b.WriteString(" ")
		b.WriteString(c.Description)
	}
	return b.String()
}

func applyCollegeInput(c *db_models.College, in request_models.CollegeInput) {
	c.Name = in.Name
	c.Address = in.Location.Address
	c.City = in.Location.City
	c.State = in.Location.State
	c.Country = in.Location.Country
	c.Pincode = in.Location.Pincode
	c.Latitude, c.Longitude = nil, nil
	if p := in.Location.Coordinates; p != nil && len(p.Coordinates) == 2 {
		lng, lat := p.Coordinates[0], p.Coordinates[1]
		c.Latitude, c.Longitude = &lat, &lng
	}
	c.Type = in.Type
	c.Established = in.Established
	c.Rating = in.Rating
	c.ContactEmail = in.Contact.Email
	c.ContactPhone = in.Contact.Phone
	c.Website = in.Contact.Website
	c.SocialMedia = datatypes.NewJSONType(in.Contact.SocialMedia)
	c.Facilities = datatypes.NewJSONType(in.Facilities)
	c.Accreditation = datatypes.NewJSONType(in.Accreditation)
	c.Placement = datatypes.NewJSONType(in.Placement)
	c.Description = in.Description
	c.AdmissionProcess = in.AdmissionProcess
	c.IsFeatured = in.IsFeatured
}

func collegeToInput(c *db_models.College) request_models.CollegeInput {
	in := request_models.CollegeInput{
		Name: c.Name,
		Location: request_models.LocationInput{
			Address: c.Address,
			City:    c.City,
			State:   c.State,
			Country: c.Country,
			Pincode: c.Pincode,
		},
		Type:        c.Type,
		Established: c.Established,
		Rating:      c.Rating,
		Contact: request_models.ContactInput{
			Email:       c.ContactEmail,
			Phone:       c.ContactPhone,
			Website:     c.Website,
			SocialMedia: c.SocialMedia.Data(),
		},
		Facilities:       c.Facilities.Data(),
		Accreditation:    c.Accreditation.Data(),
		Description:      c.Description,
		AdmissionProcess: c.AdmissionProcess,
		Placement:        c.Placement.Data(),
		IsFeatured:       c.IsFeatured,
	}
	if c.Latitude != nil && c.Longitude != nil {
		in.Location.Coordinates = &request_models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{*c.Longitude, *c.Latitude},
		}
	}
	return in
}

func courseFromInput(collegeID uuid.UUID, in request_models.CourseInput) db_models.CollegeCourse {
	return db_models.CollegeCourse{
		CollegeID:     collegeID,
		Name:          in.Name,
		Level:         in.Level,
		Duration:      in.Duration,
		Streams:       datatypes.NewJSONType(in.Stream),
		FeeAmount:     in.Fees.Amount,
		FeeCurrency:   in.Fees.Currency,
		FeePeriod:     in.Fees.Period,
		EntranceExams: datatypes.NewJSONType(in.EntranceExams),
	}
}

func courseToInput(c *db_models.CollegeCourse) request_models.CourseInput {
	return request_models.CourseInput{
		Name:     c.Name,
		Level:    c.Level,
		Duration: c.Duration,
		Stream:   c.Streams.Data(),
		Fees: request_models.FeesInput{
			Amount:   c.FeeAmount,
			Currency: c.FeeCurrency,
			Period:   c.FeePeriod,
		},
		EntranceExams: c.EntranceExams.Data(),
	}
}
