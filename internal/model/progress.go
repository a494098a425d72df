package model

import "time"

// UserStats is the per-user row of running engagement counters.
// Exactly one row exists per user — it is created automatically when the
// user is, and only ever updated in place.
//
// WHY IS AIScore A STRING?
// The frontend renders the score as a decimal ("7.5"), and the store
// keeps whatever the last analysis reported rather than an average.
// Storing the display string avoids a float round-trip and matches the
// wire format the client already expects.
type UserStats struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	LearningStreak int       `json:"learningStreak"`
	MockInterviews int       `json:"mockInterviews"`
	CodeChallenges int       `json:"codeChallenges"`
	AIScore        string    `json:"aiScore"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// LearningTopic tracks a user's progress (0–100) in one study area.
// Three default topics are seeded for every new user.
type LearningTopic struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	TopicName string    `json:"topicName"`
	Progress  int       `json:"progress"`
	UpdatedAt time.Time `json:"updatedAt"`
}
