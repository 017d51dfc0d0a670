package core

import (
	"encoding/json"
	"time"
)

// PageSize is the fixed number of posts in a feed page.
const PageSize = 10

// User is a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Name      string    `gorm:"not null" json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Password *Password `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Settings *Settings `gorm:"constraint:OnDelete:CASCADE" json:"settings,omitempty"`

	Posts        []Post        `gorm:"constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Comments     []Comment     `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes        []Like        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BlockedPosts []BlockedPost `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SeenPosts    []Seen        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Password holds the bcrypt hash of a user's password. It never leaves the persistence layer.
type Password struct {
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	Hash   string `gorm:"not null"`
}

func (Password) TableName() string {
	return "passwords"
}

// Settings are per-user account preferences, including the selected theme.
type Settings struct {
	UserID        uint   `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	ThemeID       uint   `gorm:"not null;index" json:"themeId"`
	Theme         *Theme `gorm:"constraint:OnDelete:RESTRICT" json:"theme,omitempty"`
	Notifications bool   `gorm:"not null;default:true" json:"notifications"`
	Privacy       string `gorm:"not null;default:none" json:"privacy"`
	Accessibility string `gorm:"not null;default:none" json:"accessibility"`
}

func (Settings) TableName() string {
	return "settings"
}

// Theme is a named set of CSS color values.
type Theme struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	Primary   string `gorm:"not null" json:"primary"`
	Secondary string `gorm:"not null" json:"secondary"`
	Accent    string `gorm:"not null" json:"accent"`
	Accent2   string `gorm:"column:accent2;not null" json:"accent2"`
	Mood      string `gorm:"not null" json:"mood"`
}

func (Theme) TableName() string {
	return "themes"
}

// Post is an image with a title, owned by its author.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Image     string    `gorm:"not null" json:"image"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE" json:"likes"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`

	// LikeCount is computed from Likes at read time.
	LikeCount int `gorm:"-" json:"likeCount"`
	// SeenByViewer is set on feed items for signed-in viewers.
	SeenByViewer bool `gorm:"-" json:"seen"`

	Blocks []BlockedPost `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Seen   []Seen        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// Like is identified by the (user, post) pair; at most one exists per pair.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// Comment is an append-only note on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	UserID    uint      `gorm:"not null;index" json:"authorId"`
	User      *User     `json:"user,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// BlockedPost hides a post from one user's feed.
type BlockedPost struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (BlockedPost) TableName() string {
	return "blocked_posts"
}

// Seen records that a user has scrolled past a post.
type Seen struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Seen) TableName() string {
	return "seen_posts"
}

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&Theme{},
		&User{},
		&Password{},
		&Settings{},
		&Post{},
		&Like{},
		&Comment{},
		&BlockedPost{},
		&Seen{},
	}
}

// FeedPage is one window over the feed.
type FeedPage struct {
	Items      []Post `json:"items"`
	Page       int    `json:"page"`
	TotalCount int64  `json:"totalCount"`
}

// LastPage is the highest page number holding items, at least 1.
func (p FeedPage) LastPage() int {
	if p.TotalCount <= 0 {
		return 1
	}
	return int((p.TotalCount + PageSize - 1) / PageSize)
}

// MarshalJSON adds lastPage to the encoded page.
func (p FeedPage) MarshalJSON() ([]byte, error) {
	type page FeedPage
	return json.Marshal(struct {
		page
		LastPage int `json:"lastPage"`
	}{page(p), p.LastPage()})
}

// UserUpdate carries the editable account fields.
type UserUpdate struct {
	Email         string
	ThemeID       uint
	Notifications bool
	Privacy       string
	Accessibility string
}

// Viewer is the identity a request acts as. The zero value is anonymous.
type Viewer struct {
	UserID uint
}

func Anonymous() Viewer {
	return Viewer{}
}

func Authenticated(userID uint) Viewer {
	return Viewer{UserID: userID}
}

func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

// Is reports whether the viewer is the given, non-anonymous user.
func (v Viewer) Is(userID uint) bool {
	return v.IsAuthenticated() && v.UserID == userID
}
