package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CreateChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

type UpdateChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

type LogDayRequest struct {
	Date   string `json:"date" binding:"required"`
	Status Status `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type DayStatusResponse struct {
	ChallengeID int64  `json:"challenge_id"`
	Date        string `json:"date"`
	Status      Status `json:"status"`
}

type StreakResponse struct {
	ChallengeID int64 `json:"challenge_id"`
	Current     int   `json:"current"`
	Longest     int   `json:"longest"`
}

type StreakBoardEntry struct {
	Challenge Challenge `json:"challenge"`
	Current   int       `json:"current"`
	Longest   int       `json:"longest"`
}

type AutoSkipRequest struct {
	TargetDate string `json:"target_date"`
}

type AutoSkipResponse struct {
	TargetDate string  `json:"target_date"`
	SkippedIDs []int64 `json:"skipped_ids"`
}
