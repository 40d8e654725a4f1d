package billing

// Free plan limits. Premium has no limits, represented as nil pointers
// rather than a large sentinel number.
const (
	FreeMaxProjects      = 1
	FreeMaxForecastYears = 5
)

// PlanLimits describes the quota attached to a plan. A nil limit means
// unlimited.
type PlanLimits struct {
	MaxProjects      *int
	MaxForecastYears *int
}

// LimitsForPlan returns the quota for a plan. Unknown plans get the
// free limits, mirroring how unknown subscription statuses map down.
func LimitsForPlan(plan Plan) PlanLimits {
	if plan == PlanPremium {
		return PlanLimits{}
	}
	maxProjects := FreeMaxProjects
	maxYears := FreeMaxForecastYears
	return PlanLimits{
		MaxProjects:      &maxProjects,
		MaxForecastYears: &maxYears,
	}
}

// AllowsProjectCount reports whether a user holding these limits may
// create another project given their current count.
func (l PlanLimits) AllowsProjectCount(current int64) bool {
	if l.MaxProjects == nil {
		return true
	}
	return current < int64(*l.MaxProjects)
}

// AllowsForecastYears reports whether the requested horizon fits.
func (l PlanLimits) AllowsForecastYears(years int) bool {
	if l.MaxForecastYears == nil {
		return true
	}
	return years <= *l.MaxForecastYears
}
