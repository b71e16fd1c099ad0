package domain

// Gender as used by the calorie estimator.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes weekly exercise volume.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"   // little or no exercise
	ActivityLight      ActivityLevel = "light"       // 1-3 days/week
	ActivityModerate   ActivityLevel = "moderate"    // 3-5 days/week
	ActivityActive     ActivityLevel = "active"      // 6-7 days/week
	ActivityVeryActive ActivityLevel = "very_active" // hard daily exercise & physical job
)

// CalorieGoal is what the trainee wants their weight to do.
type CalorieGoal string

const (
	GoalLoseWeight     CalorieGoal = "lose_weight"
	GoalMaintainWeight CalorieGoal = "maintain_weight"
	GoalGainWeight     CalorieGoal = "gain_weight"
)

// CalorieRequest carries the demographic and goal inputs for a daily
// calorie estimate.
type CalorieRequest struct {
	Age           int           `json:"age"`
	WeightKg      int           `json:"weight"`
	HeightCm      int           `json:"height"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          CalorieGoal   `json:"goal"`
}
