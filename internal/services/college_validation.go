package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"edupath/internal/models/request_models"
	"edupath/pkg/utils"
)

// validate checks the same `binding` tags gin checks on bound requests, so
// payloads that reach the service through merge patches or seed files obey
// the same rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func invalid(format string, args ...any) error {
	return utils.Detail(utils.ErrInvalidInput, format, args...)
}

var sliceIndex = regexp.MustCompile(`\[\d+\]`)

// ValidationError turns the first failed rule into the client-facing
// message. Errors that are not validation failures become a generic 400.
func ValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return invalid("Invalid request format")
	}
	fe := errs[0]

	root, path, _ := strings.Cut(sliceIndex.ReplaceAllString(fe.StructNamespace(), ""), ".")
	if root == "CourseInput" {
		path = "Courses." + path
	}
	value := fmt.Sprint(fe.Value())

	switch path {
	case "Name":
		if fe.Tag() == "required" {
			return invalid("College name is required")
		}
		return invalid("College name cannot be more than %s characters", fe.Param())
	case "Location.Address", "Location.City", "Location.State":
		if fe.Tag() == "required" {
			return invalid("Location address, city and state are required")
		}
	case "Type":
		return invalid("Invalid college type %q", value)
	case "Established":
		return invalid("Establishment year seems incorrect")
	case "Rating":
		return invalid("Rating must be between 0 and 5")
	case "Contact.Email":
		return invalid("Please provide a valid email")
	case "Contact.Website":
		return invalid("Please provide a valid website URL")
	case "Facilities":
		return invalid("Unknown facility %q", value)
	case "Accreditation.Name":
		return invalid("Unknown accreditation %q", value)
	case "Description", "AdmissionProcess":
		return invalid("%s cannot be more than %s characters", fieldLabel(fe.StructField()), fe.Param())
	case "Courses.Name":
		if fe.Tag() == "required" {
			return invalid("Course name is required")
		}
	case "Courses.Level":
		return invalid("Invalid course level %q", value)
	case "Courses.Duration":
		if fe.Tag() == "required" {
			return invalid("Course duration is required")
		}
	case "Courses.Stream":
		if fe.Tag() == "oneof" {
			return invalid("Invalid course stream %q", value)
		}
		return invalid("Course stream is required")
	case "Courses.Fees.Amount":
		return invalid("Course fee cannot be negative")
	case "Courses.Fees.Period":
		return invalid("Invalid fee period %q", value)
	}

	if fe.Tag() == "max" {
		return invalid("%s cannot be more than %s characters", fieldLabel(fe.StructField()), fe.Param())
	}
	return invalid("Invalid value for %s", fieldLabel(fe.StructField()))
}

// fieldLabel turns "AdmissionProcess" into "Admission process".
func fieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeCollege trims strings, applies defaults and checks every field.
func normalizeCollege(in *request_models.CollegeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Location.Address = strings.TrimSpace(in.Location.Address)
	in.Location.City = strings.TrimSpace(in.Location.City)
	in.Location.State = strings.TrimSpace(in.Location.State)
	in.Location.Country = strings.TrimSpace(in.Location.Country)
	in.Location.Pincode = strings.TrimSpace(in.Location.Pincode)
	in.Contact.Email = strings.ToLower(strings.TrimSpace(in.Contact.Email))
	in.Contact.Website = strings.TrimSpace(in.Contact.Website)
	if in.Location.Country == "" {
		in.Location.Country = "India"
	}
	for i := range in.Courses {
		trimCourse(&in.Courses[i])
	}

	if err := validate.Struct(in); err != nil {
		return ValidationError(err)
	}

	if in.Established > time.Now().Year() {
		return invalid("Establishment year cannot be in the future")
	}
	if math.IsNaN(in.Rating) {
		return invalid("Rating must be between 0 and 5")
	}
	in.Rating = math.Round(in.Rating*10) / 10

	if c := in.Location.Coordinates; c != nil {
		if len(c.Coordinates) == 0 {
			in.Location.Coordinates = nil
		} else {
			if len(c.Coordinates) != 2 {
				return invalid("Coordinates must be [longitude, latitude]")
			}
			lng, lat := c.Coordinates[0], c.Coordinates[1]
			if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
				return invalid("Coordinates are out of range")
			}
			c.Type = "Point"
		}
	}
	return nil
}

func trimCourse(c *request_models.CourseInput) {
	c.Name = strings.TrimSpace(c.Name)
	c.Duration = strings.TrimSpace(c.Duration)
	if c.Fees.Currency == "" {
		c.Fees.Currency = "INR"
	}
	if c.Fees.Period == "" {
		c.Fees.Period = "per year"
	}
}

func normalizeCourse(c *request_models.CourseInput) error {
	trimCourse(c)
	if err := validate.Struct(c); err != nil {
		return ValidationError(err)
	}
	return nil
}
