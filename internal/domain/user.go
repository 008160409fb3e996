package domain

// User is a read-only snapshot from the identity collaborator. The engine
// only cares about the referral link, the locale for notices and whether the
// user is an approved creator.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Locale     string `json:"locale"`
	ReferrerID *int64 `json:"referrer_id,omitempty"`
	IsCreator  bool   `json:"is_creator"`
}
