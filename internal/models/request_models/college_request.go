package request_models

import "edupath/internal/models/db_models"

// GeoPoint is a GeoJSON point; Coordinates is [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type,omitempty" yaml:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

type LocationInput struct {
	Address     string    `json:"address" yaml:"address" binding:"required,max=300"`
	City        string    `json:"city" yaml:"city" binding:"required,max=100"`
	State       string    `json:"state" yaml:"state" binding:"required,max=100"`
	Country     string    `json:"country,omitempty" yaml:"country,omitempty" binding:"omitempty,max=100"`
	Pincode     string    `json:"pincode,omitempty" yaml:"pincode,omitempty" binding:"omitempty,max=12"`
	Coordinates *GeoPoint `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

type ContactInput struct {
	Email       string            `json:"email,omitempty" yaml:"email,omitempty" binding:"omitempty,email"`
	Phone       string            `json:"phone,omitempty" yaml:"phone,omitempty" binding:"omitempty,max=30"`
	Website     string            `json:"website,omitempty" yaml:"website,omitempty" binding:"omitempty,url,max=255"`
	SocialMedia map[string]string `json:"socialMedia,omitempty" yaml:"socialMedia,omitempty"`
}

type FeesInput struct {
	Amount   float64 `json:"amount" yaml:"amount" binding:"gte=0"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty" binding:"omitempty,len=3"`
	Period   string  `json:"period,omitempty" yaml:"period,omitempty" binding:"omitempty,oneof='per year' 'per semester' total"`
}

type CourseInput struct {
	Name          string    `json:"name" yaml:"name" binding:"required,max=200"`
	Level         string    `json:"level" yaml:"level" binding:"required,oneof=Certificate Diploma UG PG Doctorate Post-Doctoral"`
	Duration      string    `json:"duration" yaml:"duration" binding:"required,max=50"`
	Stream        []string  `json:"stream" yaml:"stream" binding:"required,min=1,dive,oneof=Science Arts Commerce Engineering Medical Law Management Vocational Other"`
	Fees          FeesInput `json:"fees" yaml:"fees"`
	EntranceExams []string  `json:"entranceExam,omitempty" yaml:"entranceExam,omitempty"`
}

// CollegeInput is the create payload and, decoded over the current state,
// the update payload.
type CollegeInput struct {
	Name             string                    `json:"name" yaml:"name" binding:"required,max=200"`
	Location         LocationInput             `json:"location" yaml:"location"`
	Type             string                    `json:"type" yaml:"type" binding:"required,oneof=Government Private 'Deemed University' 'Central University' 'State University' IIT NIT IIIT IIM AIIMS Other"`
	Established      int                       `json:"established,omitempty" yaml:"established,omitempty" binding:"omitempty,gte=1800"`
	Rating           float64                   `json:"rating,omitempty" yaml:"rating,omitempty" binding:"gte=0,lte=5"`
	Courses          []CourseInput             `json:"courses,omitempty" yaml:"courses,omitempty" binding:"omitempty,dive"`
	Contact          ContactInput              `json:"contact,omitempty" yaml:"contact,omitempty"`
	Facilities       []string                  `json:"facilities,omitempty" yaml:"facilities,omitempty" binding:"omitempty,dive,oneof=Library Hostel Cafeteria Sports Gym Auditorium Medical Labs Wi-Fi Transportation Bank 'Post Office' 'Guest House' 'Conference Hall' 'Computer Center' 'Placement Cell'"`
	Accreditation    []db_models.Accreditation `json:"accreditation,omitempty" yaml:"accreditation,omitempty" binding:"omitempty,dive"`
	Description      string                    `json:"description,omitempty" yaml:"description,omitempty" binding:"max=2000"`
	AdmissionProcess string                    `json:"admissionProcess,omitempty" yaml:"admissionProcess,omitempty" binding:"max=1000"`
	Placement        db_models.Placement       `json:"placement,omitempty" yaml:"placement,omitempty"`
	IsFeatured       bool                      `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
}

type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}
