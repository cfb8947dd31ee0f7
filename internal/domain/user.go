package domain

type User struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Preferences Preferences `json:"preferences"`
}

type Preferences struct {
	FavoriteDestinations []string `json:"favoriteDestinations"`
	RoomPreferences      []string `json:"roomPreferences"`
	Amenities            []string `json:"amenities"`
}

// UserPatch carries the fields of a partial update; nil means unchanged.
type UserPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Preferences *Preferences
}

func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
	}
	return u
}
