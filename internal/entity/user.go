package entity

type User struct {
	ID         string
	FirstName  string
	LastName   string
	Username   string
	ProfilePic string
	Tel        string
	// Seen holds the ad ids this user has opened, one entry per ad.
	Seen []string
}

// OwnerProfile is the subset of a user account attached to a single-ad
// response. The contact fields are public by design; nothing else leaks.
type OwnerProfile struct {
	ID         string `json:"id"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
	Tel        string `json:"tel"`
}

func (u *User) PublicProfile() *OwnerProfile {
	return &OwnerProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
		Tel:        u.Tel,
	}
}
