package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultCalorieGoal = 2000
)

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"-"`
	Role               string             `bson:"role" json:"role"`
	DietaryPreferences []string           `bson:"dietary_preferences" json:"dietaryPreferences"`
	CalorieGoal        int                `bson:"calorie_goal" json:"calorieGoal"`
	Created_at         time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at         time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Prefers(preference string) bool {
	for _, p := range u.DietaryPreferences {
		if p == preference {
			return true
		}
	}
	return false
}

// EffectiveCalorieGoal falls back to the default when no goal is set.
func (u *User) EffectiveCalorieGoal() int {
	if u.CalorieGoal <= 0 {
		return DefaultCalorieGoal
	}
	return u.CalorieGoal
}
