package models

// BlogPost is a single published article. Body always holds sanitized HTML.
type BlogPost struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"size:250;not null;uniqueIndex:idx_blog_post_title" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	Date     string `gorm:"size:250;not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	Author   string `gorm:"size:250;not null" json:"author"`
	ImgURL   string `gorm:"column:img_url;size:250;not null" json:"img_url"`
}

// TableName keeps the table name used by earlier deployments of the blog.
func (BlogPost) TableName() string {
	return "blog_post"
}
