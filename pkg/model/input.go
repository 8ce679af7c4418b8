package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type SessionRecord struct {
	Day      string `mapstructure:"day" json:"day" validate:"required"`
	Start    string `mapstructure:"start" json:"start" validate:"required,clock"`
	End      string `mapstructure:"end" json:"end" validate:"required,clock"`
	Parity   string `mapstructure:"parity" json:"parity"`
	Location string `mapstructure:"location" json:"location"`
}

// CourseRecord is the catalog entry handed in by the data-loading collaborator
type CourseRecord struct {
	Key               string          `mapstructure:"key" json:"key" validate:"required"`
	Code              string          `mapstructure:"code" json:"code"`
	Name              string          `mapstructure:"name" json:"name"`
	Credits           int             `mapstructure:"credits" json:"credits" validate:"min=0"`
	Instructor        string          `mapstructure:"instructor" json:"instructor"`
	Major             string          `mapstructure:"major" json:"major"`
	Location          string          `mapstructure:"location" json:"location"`
	GenderRestriction string          `mapstructure:"gender_restriction" json:"gender_restriction"`
	ExamTime          string          `mapstructure:"exam_time" json:"exam_time"`
	IsAvailable       bool            `mapstructure:"is_available" json:"is_available"`
	Schedule          []SessionRecord `mapstructure:"schedule" json:"schedule" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("clock", func(field validator.FieldLevel) bool {
		_, err := ParseClock(field.Field().String())
		return err == nil
	})
	return v
}

// Reads a catalog file holding either {"courses": {key: record}}, {"courses": [record]} or a bare {key: record} map
func CatalogFromJson(file string, grid Grid, logger *zap.Logger) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %v", err)
	}

	var catalogJson map[string]any
	if err := json.Unmarshal(bytes, &catalogJson); err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %v", err)
	}

	records, err := DecodeRecords(catalogJson)
	if err != nil {
		return nil, err
	}
	return NewCatalog(records, grid, logger), nil
}

// Decodes a generic json document into course records, filling missing keys from the enclosing map keys
func DecodeRecords(catalogJson map[string]any) ([]CourseRecord, error) {
	var source any = catalogJson
	if courses, ok := catalogJson["courses"]; ok {
		source = courses
	}

	records := make([]CourseRecord, 0)
	switch courses := source.(type) {
	case map[string]any:
		keys := lo.Keys(courses)
		slices.Sort(keys) // Map iteration order is not stable
		for _, key := range keys {
			var record CourseRecord
			if err := decode(courses[key], &record); err != nil {
				return nil, fmt.Errorf("cannot decode course \"%v\": %v", key, err)
			}
			if record.Key == "" {
				record.Key = key
			}
			records = append(records, record)
		}
	case []any:
		for i, raw := range courses {
			var record CourseRecord
			if err := decode(raw, &record); err != nil {
				return nil, fmt.Errorf("cannot decode course at position %d: %v", i, err)
			}
			if record.Key == "" {
				record.Key = record.Code
			}
			records = append(records, record)
		}
	default:
		return nil, fmt.Errorf("unexpected catalog layout: %T", source)
	}

	return records, nil
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // Scraped catalogs carry numbers as strings
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Builds a catalog snapshot. Invalid records and sessions are skipped and logged rather than failing the whole
// catalog; duplicate keys are given a unique suffix
func NewCatalog(records []CourseRecord, grid Grid, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog := &Catalog{
		courses: make(map[string]Course, len(records)),
		keys:    make([]string, 0, len(records)),
		grid:    grid,
	}

	for _, record := range records {
		if err := validate.Struct(record); err != nil {
			logger.Warn("skipping invalid course record", zap.String("key", record.Key), zap.String("code", record.Code), zap.Error(err))
			continue
		}

		key := generateUniqueKey(record.Key, catalog.courses)
		if key != record.Key {
			logger.Warn("duplicate course key renamed", zap.String("key", record.Key), zap.String("renamed", key))
		}

		course := Course{
			Key:               key,
			Code:              record.Code,
			Name:              record.Name,
			Credits:           record.Credits,
			Instructor:        record.Instructor,
			Major:             record.Major,
			Location:          record.Location,
			GenderRestriction: record.GenderRestriction,
			ExamTime:          record.ExamTime,
			Available:         record.IsAvailable,
			Sessions:          make([]Session, 0, len(record.Schedule)),
		}

		for _, sessionRecord := range record.Schedule {
			session, err := ParseSession(sessionRecord, grid)
			if err != nil {
				logger.Warn("skipping invalid session", zap.String("key", key), zap.Any("session", sessionRecord), zap.Error(err))
				continue
			}
			if session.Location == "" {
				session.Location = course.Location
			}
			course.Sessions = append(course.Sessions, session)
		}

		catalog.courses[key] = course
		catalog.keys = append(catalog.keys, key)
	}

	return catalog
}

func ParseSession(record SessionRecord, grid Grid) (Session, error) {
	if err := validate.Struct(record); err != nil {
		return Session{}, err
	}

	day, err := ParseDay(record.Day)
	if err != nil {
		return Session{}, err
	}
	parity, err := ParseParity(record.Parity)
	if err != nil {
		return Session{}, err
	}
	start, err := grid.Index(record.Start)
	if err != nil {
		return Session{}, err
	}
	end, err := grid.Index(record.End)
	if err != nil {
		return Session{}, err
	}
	if start >= end {
		return Session{}, InvalidTimeSlotError{Value: record.End, Reason: fmt.Sprintf("session must end after %v", record.Start)}
	}

	return Session{
		Day:      day,
		Start:    start,
		End:      end,
		Parity:   parity,
		Location: record.Location,
	}, nil
}

// Appends the smallest counter that makes the key unique
func generateUniqueKey(key string, existing map[string]Course) string {
	if _, ok := existing[key]; !ok {
		return key
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%v_%d", key, counter)
		if _, ok := existing[candidate]; !ok {
			return candidate
		}
	}
}
