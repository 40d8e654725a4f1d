package forecast

import (
	"strings"
	"time"

	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	minStartYear = 1900
	maxStartYear = 2200

	// DefaultForecastYears is used when a create request omits the horizon.
	DefaultForecastYears = 5
)

// Project is a forecasting workspace owned by exactly one user. Rows
// hang off the project and are cascade-deleted with it.
type Project struct {
	shared.BaseEntity
	UserID        uuid.UUID
	Name          string
	Description   string
	StartYear     int
	ForecastYears int
}

// NewProject validates and creates a project. Entitlement checks are
// the caller's concern; this only enforces intrinsic validity.
func NewProject(userID uuid.UUID, name, description string, startYear, forecastYears int) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "project name is required")
	}
	if startYear < minStartYear || startYear > maxStartYear {
		return nil, shared.NewDomainError("INVALID_YEAR", "start year out of range")
	}
	if forecastYears < 1 {
		return nil, shared.NewDomainError("INVALID_FORECAST_YEARS", "forecast years must be at least 1")
	}

	return &Project{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		Name:          name,
		Description:   description,
		StartYear:     startYear,
		ForecastYears: forecastYears,
	}, nil
}

// ContainsYear reports whether a row year falls inside the project's
// horizon (startYear .. startYear+forecastYears inclusive).
func (p *Project) ContainsYear(year int) bool {
	return year >= p.StartYear && year <= p.StartYear+p.ForecastYears
}

// ProjectPatch carries an update; nil fields are left untouched.
type ProjectPatch struct {
	Name          *string
	Description   *string
	ForecastYears *int
}

// Apply mutates the project with the patch fields that are set.
func (p *Project) Apply(patch ProjectPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_NAME", "project name is required")
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ForecastYears != nil {
		if *patch.ForecastYears < 1 {
			return shared.NewDomainError("INVALID_FORECAST_YEARS", "forecast years must be at least 1")
		}
		p.ForecastYears = *patch.ForecastYears
	}
	p.UpdatedAt = time.Now()
	return nil
}
