package forms

// Like is submitted by the like and unlike forms. UserID must match the session.
type Like struct {
	UserID uint `form:"userId" validate:"required"`
	PostID uint `form:"postId" validate:"required"`
}

// Comment carries the raw body; emptiness and length are domain rules checked by the social service.
type Comment struct {
	PostID uint   `form:"postId" validate:"required"`
	UserID uint   `form:"userId"`
	Body   string `form:"comment"`
}

type Block struct {
	PostID uint `form:"postId" validate:"required"`
}

type Seen struct {
	PostID uint `form:"postId" validate:"required"`
}

// Page is nil when the form carries no page. An explicit value is passed through as is, so the feed can
// reject anything below 1.
type Page struct {
	Page *int `form:"page"`
}

// Number returns the requested page, 1 when none was given.
func (p Page) Number() int {
	if p.Page == nil {
		return 1
	}
	return *p.Page
}

type Join struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required,min=8"`
	Name       string `form:"name" validate:"required,max=64"`
	RedirectTo string `form:"redirectTo"`
}

type Login struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	RedirectTo string `form:"redirectTo"`
}

type Settings struct {
	Email         string `form:"useremail" validate:"required,email"`
	ThemeID       uint   `form:"theme" validate:"required"`
	Notifications string `form:"notifications" validate:"omitempty,oneof=on off"`
	Privacy       string `form:"privacy" validate:"required"`
	Accessibility string `form:"accessibility" validate:"required"`
}

// NotificationsEnabled follows checkbox semantics: only "on" enables.
func (s Settings) NotificationsEnabled() bool {
	return s.Notifications == "on"
}

type NewPost struct {
	Title string `form:"postTitle" validate:"required,max=200"`
}
