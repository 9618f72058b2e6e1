package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Accreditation struct {
	Name       string `json:"name" yaml:"name" binding:"required,oneof=NAAC NBA AICTE UGC MCI PCI NCTE COA BCI AIMA Other"`
	Grade      string `json:"grade,omitempty" yaml:"grade,omitempty"`
	ValidUntil string `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
}

type PackageAmount struct {
	Amount   float64 `json:"amount" yaml:"amount"`
	Currency string  `json:"currency" yaml:"currency"`
}

// Placement also decodes seed files, hence the yaml tags.
type Placement struct {
	AveragePackage      *PackageAmount `json:"averagePackage,omitempty" yaml:"averagePackage,omitempty"`
	HighestPackage      *PackageAmount `json:"highestPackage,omitempty" yaml:"highestPackage,omitempty"`
	TopRecruiters       []string       `json:"topRecruiters,omitempty" yaml:"topRecruiters,omitempty"`
	PlacementPercentage *float64       `json:"placementPercentage,omitempty" yaml:"placementPercentage,omitempty"`
}

type College struct {
	BaseModel
	Name             string   `gorm:"size:200;not null;index"`
	Address          string   `gorm:"size:255"`
	City             string   `gorm:"size:100;index"`
	State            string   `gorm:"size:100;index"`
	Country          string   `gorm:"size:100;default:India"`
	Pincode          string   `gorm:"size:20"`
	Latitude         *float64 `gorm:"index:idx_colleges_geo,priority:1"`
	Longitude        *float64 `gorm:"index:idx_colleges_geo,priority:2"`
	Type             string   `gorm:"size:50;not null"`
	Established      int
	Rating           float64 `gorm:"index"`
	ContactEmail     string  `gorm:"size:255"`
	ContactPhone     string  `gorm:"size:50"`
	Website          string  `gorm:"size:255"`
	SocialMedia      datatypes.JSONType[map[string]string]
	Facilities       datatypes.JSONType[[]string]
	Accreditation    datatypes.JSONType[[]Accreditation]
	Placement        datatypes.JSONType[Placement]
	Description      string `gorm:"size:2000"`
	AdmissionProcess string `gorm:"size:1000"`
	Photo            string `gorm:"size:255;default:no-photo.jpg"`
	IsFeatured       bool   `gorm:"default:false;index"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedBy        *uuid.UUID `gorm:"type:uuid"`

	Courses []CollegeCourse `gorm:"foreignKey:CollegeID"`
}

type CollegeCourse struct {
	BaseModel
	CollegeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"size:200;not null"`
	Level         string    `gorm:"size:30;not null"`
	Duration      string    `gorm:"size:50;not null"`
	Streams       datatypes.JSONType[[]string]
	FeeAmount     float64
	FeeCurrency   string `gorm:"size:10;default:INR"`
	FeePeriod     string `gorm:"size:20;default:per year"`
	EntranceExams datatypes.JSONType[[]string]
}
