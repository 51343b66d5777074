package models

import "time"

// RSVPStatus represents the attendance confirmation status
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
)

// Canonical maps the legacy Portuguese wire literals, still sent by older
// RSVP pages, onto their canonical values. Anything else passes through
// unchanged.
func (s RSVPStatus) Canonical() RSVPStatus {
	switch s {
	case "confirmado":
		return RSVPConfirmed
	case "nao_confirmado":
		return RSVPDeclined
	default:
		return s
	}
}

// Valid reports whether s is a recognized attendance answer, in either the
// canonical or the legacy spelling. Pending is not a valid answer: guests
// confirm or decline, they never reset themselves.
func (s RSVPStatus) Valid() bool {
	c := s.Canonical()
	return c == RSVPConfirmed || c == RSVPDeclined
}

// Admin is the persisted administrator account. Passwords are stored only as
// bcrypt hashes.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// GuestGroup is a family or party invited together.
type GuestGroup struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Guests []Guest `gorm:"foreignKey:GroupID" json:"guests,omitempty"`
}

// Guest represents a wedding guest
type Guest struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:200;not null" json:"name"`
	Phone      string     `gorm:"size:20" json:"phone,omitempty"`
	RSVPStatus RSVPStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"rsvp_status"`
	GroupID    *uint      `gorm:"index" json:"group_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	Group *GuestGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// GiftItem is a gift registry entry. Price is a display string, not an
// amount the system computes with.
type GiftItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       string    `gorm:"size:50" json:"price,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	PixKey      string    `gorm:"size:255" json:"pix_key,omitempty"`
	PixLink     string    `gorm:"size:500" json:"pix_link,omitempty"`
	CardLink    string    `gorm:"size:500" json:"card_link,omitempty"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VenueInfo is the singleton venue record. EventDate and EventTime are kept
// consistent with EventDateTime whenever both inputs are supplied together.
type VenueInfo struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:200;not null" json:"name"`
	Address       string     `gorm:"type:text" json:"address,omitempty"`
	MapLink       string     `gorm:"size:500" json:"map_link,omitempty"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventTime     string     `gorm:"size:5" json:"event_time,omitempty"`
	EventDateTime *time.Time `json:"event_datetime,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
