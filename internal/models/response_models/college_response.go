package response_models

import (
	"strings"

	"edupath/internal/models/db_models"
	"edupath/internal/models/request_models"
)

type CourseResponse struct {
	ID            string                   `json:"id"`
	CollegeID     string                   `json:"collegeId"`
	Name          string                   `json:"name"`
	Level         string                   `json:"level"`
	Duration      string                   `json:"duration"`
	Stream        []string                 `json:"stream"`
	Fees          request_models.FeesInput `json:"fees"`
	EntranceExams []string                 `json:"entranceExam"`
}

// CollegeResponse omits empty fields so that a `select` projection only
// carries the chosen columns.
type CollegeResponse struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name,omitempty"`
	Location         *request_models.LocationInput `json:"location,omitempty"`
	FullAddress      string                        `json:"fullAddress,omitempty"`
	Type             string                        `json:"type,omitempty"`
	Established      int                           `json:"established,omitempty"`
	Rating           float64                       `json:"rating,omitempty"`
	Courses          []CourseResponse              `json:"courses,omitempty"`
	Contact          *request_models.ContactInput  `json:"contact,omitempty"`
	Facilities       []string                      `json:"facilities,omitempty"`
	Accreditation    []db_models.Accreditation     `json:"accreditation,omitempty"`
	Placement        *db_models.Placement          `json:"placement,omitempty"`
	Description      string                        `json:"description,omitempty"`
	AdmissionProcess string                        `json:"admissionProcess,omitempty"`
	Photo            string                        `json:"photo,omitempty"`
	IsFeatured       bool                          `json:"isFeatured"`
	CreatedBy        string                        `json:"createdBy,omitempty"`
	DistanceKm       *float64                      `json:"distanceKm,omitempty"`
	Similarity       *float64                      `json:"similarity,omitempty"`
	CreatedAt        int64                         `json:"createdAt,omitempty"`
	UpdatedAt        int64                         `json:"updatedAt,omitempty"`
}

func ToCourseResponse(c *db_models.CollegeCourse) CourseResponse {
	streams := c.Streams.Data()
	if streams == nil {
		streams = []string{}
	}
	exams := c.EntranceExams.Data()
	if exams == nil {
		exams = []string{}
	}
	return CourseResponse{
		ID:        c.ID.String(),
		CollegeID: c.CollegeID.String(),
		Name:      c.Name,
		Level:     c.Level,
		Duration:  c.Duration,
		Stream:    streams,
		Fees: request_models.FeesInput{
			Amount:   c.FeeAmount,
			Currency: c.FeeCurrency,
			Period:   c.FeePeriod,
		},
		EntranceExams: exams,
	}
}

func ToCourseResponses(courses []db_models.CollegeCourse) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, ToCourseResponse(&courses[i]))
	}
	return out
}

func ToCollegeResponse(c *db_models.College) CollegeResponse {
	resp := CollegeResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Type:             c.Type,
		Established:      c.Established,
		Rating:           c.Rating,
		Facilities:       c.Facilities.Data(),
		Accreditation:    c.Accreditation.Data(),
		Description:      c.Description,
		AdmissionProcess: c.AdmissionProcess,
		Photo:            c.Photo,
		IsFeatured:       c.IsFeatured,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Address != "" || c.City != "" || c.State != "" || c.Latitude != nil {
		loc := &request_models.LocationInput{
			Address: c.Address,
			City:    c.City,
			State:   c.State,
			Country: c.Country,
			Pincode: c.Pincode,
		}
		if c.Latitude != nil && c.Longitude != nil {
			loc.Coordinates = &request_models.GeoPoint{
				Type:        "Point",
				Coordinates: []float64{*c.Longitude, *c.Latitude},
			}
		}
		resp.Location = loc
		resp.FullAddress = FullAddress(c)
	}

	if c.ContactEmail != "" || c.ContactPhone != "" || c.Website != "" || len(c.SocialMedia.Data()) > 0 {
		resp.Contact = &request_models.ContactInput{
			Email:       c.ContactEmail,
			Phone:       c.ContactPhone,
			Website:     c.Website,
			SocialMedia: c.SocialMedia.Data(),
		}
	}

	if p := c.Placement.Data(); p.AveragePackage != nil || p.HighestPackage != nil || len(p.TopRecruiters) > 0 || p.PlacementPercentage != nil {
		resp.Placement = &p
	}

	if len(c.Courses) > 0 {
		resp.Courses = ToCourseResponses(c.Courses)
	}
	if c.CreatedBy != nil {
		resp.CreatedBy = c.CreatedBy.String()
	}
	return resp
}

func ToCollegeResponses(colleges []db_models.College) []CollegeResponse {
	out := make([]CollegeResponse, 0, len(colleges))
	for i := range colleges {
		out = append(out, ToCollegeResponse(&colleges[i]))
	}
	return out
}

// FullAddress renders "address, city, state pincode, country", skipping
// empty parts.
func FullAddress(c *db_models.College) string {
	statePin := strings.TrimSpace(c.State + " " + c.Pincode)
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Address, c.City, statePin, c.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type HistoryResponse struct {
	ResultIDs []string `json:"resultIds"`
}
